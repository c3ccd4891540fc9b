package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
)

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepository
var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

const customerColumns = `
	customer_id, phone_number, password_hash, code, full_name, gender, email,
	date_of_birth, status, representative,
	created_at, created_by, updated_at, updated_by, is_delete, deleted_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.CustomerID,
		&c.PhoneNumber,
		&c.PasswordHash,
		&c.Code,
		&c.FullName,
		&c.Gender,
		&c.Email,
		&c.DateOfBirth,
		&c.Status,
		&c.Representative,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.UpdatedAt,
		&c.UpdatedBy,
		&c.IsDelete,
		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxCustomerRepository) CreateCustomer(ctx context.Context, customer domain.Customer, codeFor func(id int64) string) (*domain.Customer, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO customers (
			phone_number, password_hash, full_name, gender, email,
			date_of_birth, status, representative, created_at, created_by, is_delete
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false)
		RETURNING customer_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		customer.PhoneNumber,
		customer.PasswordHash,
		customer.FullName,
		customer.Gender,
		customer.Email,
		customer.DateOfBirth,
		customer.Status,
		customer.Representative,
		customer.CreatedAt,
		customer.CreatedBy,
	).Scan(&customer.CustomerID)
	if err != nil {
		if translated := translateUniqueViolation(err, "phone number "+customer.PhoneNumber+" already in use"); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	code := codeFor(customer.CustomerID)
	if _, err := tx.Exec(ctx, `UPDATE customers SET code = $1 WHERE customer_id = $2`, code, customer.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to set customer code: %w", err)
	}
	customer.Code = &code

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by id %d: %w", customerID, err)
	}
	return customer, nil
}

func (r *PgxCustomerRepository) FindActiveCustomerByPhone(ctx context.Context, phoneNumber string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone_number = $1 AND is_delete = false;`
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, phoneNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by phone: %w", err)
	}
	return customer, nil
}

func customerFilterClause(filter portsrepo.ListCustomersFilter) (string, []any) {
	clause := ` WHERE 1=1`
	args := []any{}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		p := fmt.Sprintf("$%d", len(args))
		clause += fmt.Sprintf(" AND (phone_number ILIKE %[1]s OR full_name ILIKE %[1]s OR code ILIKE %[1]s OR email ILIKE %[1]s)", p)
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clause += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Representative != nil {
		args = append(args, *filter.Representative)
		clause += fmt.Sprintf(" AND representative = $%d", len(args))
	}
	if filter.IsDelete != nil {
		args = append(args, *filter.IsDelete)
		clause += fmt.Sprintf(" AND is_delete = $%d", len(args))
	}
	return clause, args
}

func (r *PgxCustomerRepository) CountCustomers(ctx context.Context, filter portsrepo.ListCustomersFilter) (int, error) {
	clause, args := customerFilterClause(filter)
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+clause, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *PgxCustomerRepository) FindCustomers(ctx context.Context, filter portsrepo.ListCustomersFilter, limit, offset int) ([]domain.Customer, error) {
	clause, args := customerFilterClause(filter)
	order := " ORDER BY created_at DESC"
	if filter.OrderAsc {
		order = " ORDER BY created_at ASC"
	}
	args = append(args, limit, offset)
	query := `SELECT ` + customerColumns + ` FROM customers` + clause + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, *customer)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return customers, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET phone_number = $1, password_hash = $2, full_name = $3, gender = $4,
			email = $5, date_of_birth = $6, status = $7, representative = $8,
			updated_at = $9, updated_by = $10, is_delete = $11, deleted_at = $12
		WHERE customer_id = $13;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		customer.PhoneNumber,
		customer.PasswordHash,
		customer.FullName,
		customer.Gender,
		customer.Email,
		customer.DateOfBirth,
		customer.Status,
		customer.Representative,
		customer.UpdatedAt,
		customer.UpdatedBy,
		customer.IsDelete,
		customer.DeletedAt,
		customer.CustomerID,
	)
	if err != nil {
		if translated := translateUniqueViolation(err, "phone number "+customer.PhoneNumber+" already in use"); translated != err {
			return translated
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCustomerRepository) HardDeleteCustomer(ctx context.Context, customerID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
