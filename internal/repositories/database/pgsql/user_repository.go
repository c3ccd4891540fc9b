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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `
	user_id, phone_number, password_hash, code, full_name, gender, email,
	date_of_birth, type, status, deleted_by,
	created_at, created_by, updated_at, updated_by, is_delete, deleted_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.PhoneNumber,
		&u.PasswordHash,
		&u.Code,
		&u.FullName,
		&u.Gender,
		&u.Email,
		&u.DateOfBirth,
		&u.Type,
		&u.Status,
		&u.DeletedBy,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.UpdatedAt,
		&u.UpdatedBy,
		&u.IsDelete,
		&u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts the user and stamps the derived business code in the
// same transaction, so a row never becomes visible without its code.
func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User, codeFor func(id int64) string) (*domain.User, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO users (
			phone_number, password_hash, full_name, gender, email,
			date_of_birth, type, status, created_at, created_by, is_delete
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false)
		RETURNING user_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		user.PhoneNumber,
		user.PasswordHash,
		user.FullName,
		user.Gender,
		user.Email,
		user.DateOfBirth,
		user.Type,
		user.Status,
		user.CreatedAt,
		user.CreatedBy,
	).Scan(&user.UserID)
	if err != nil {
		if translated := translateUniqueViolation(err, "phone number "+user.PhoneNumber+" already in use"); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	code := codeFor(user.UserID)
	if _, err := tx.Exec(ctx, `UPDATE users SET code = $1 WHERE user_id = $2`, code, user.UserID); err != nil {
		return nil, fmt.Errorf("failed to set user code: %w", err)
	}
	user.Code = &code

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by id %d: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindActiveUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1 AND is_delete = false;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, phoneNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}
	return user, nil
}

// userFilterClause builds the WHERE clause and args for the list filter.
func userFilterClause(filter portsrepo.ListUsersFilter) (string, []any) {
	clause := ` WHERE 1=1`
	args := []any{}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		p := fmt.Sprintf("$%d", len(args))
		clause += fmt.Sprintf(" AND (phone_number ILIKE %[1]s OR full_name ILIKE %[1]s OR code ILIKE %[1]s OR email ILIKE %[1]s)", p)
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clause += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clause += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.IsDelete != nil {
		args = append(args, *filter.IsDelete)
		clause += fmt.Sprintf(" AND is_delete = $%d", len(args))
	}
	return clause, args
}

func (r *PgxUserRepository) CountUsers(ctx context.Context, filter portsrepo.ListUsersFilter) (int, error) {
	clause, args := userFilterClause(filter)
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+clause, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, filter portsrepo.ListUsersFilter, limit, offset int) ([]domain.User, error) {
	clause, args := userFilterClause(filter)
	order := " ORDER BY created_at DESC"
	if filter.OrderAsc {
		order = " ORDER BY created_at ASC"
	}
	args = append(args, limit, offset)
	query := `SELECT ` + userColumns + ` FROM users` + clause + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET phone_number = $1, password_hash = $2, full_name = $3, gender = $4,
			email = $5, date_of_birth = $6, type = $7, status = $8,
			deleted_by = $9, updated_at = $10, updated_by = $11,
			is_delete = $12, deleted_at = $13
		WHERE user_id = $14;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		user.PhoneNumber,
		user.PasswordHash,
		user.FullName,
		user.Gender,
		user.Email,
		user.DateOfBirth,
		user.Type,
		user.Status,
		user.DeletedBy,
		user.UpdatedAt,
		user.UpdatedBy,
		user.IsDelete,
		user.DeletedAt,
		user.UserID,
	)
	if err != nil {
		if translated := translateUniqueViolation(err, "phone number "+user.PhoneNumber+" already in use"); translated != err {
			return translated
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) HardDeleteUser(ctx context.Context, userID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
