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

type PgxAdminRepository struct {
	BaseRepository
}

func newPgxAdminRepository(pool *pgxpool.Pool) portsrepo.AdminRepository {
	return &PgxAdminRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAdminRepository implements portsrepo.AdminRepository
var _ portsrepo.AdminRepository = (*PgxAdminRepository)(nil)

const adminColumns = `admin_id, username, password_hash, full_name, is_protected, created_at`

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	err := row.Scan(
		&a.AdminID,
		&a.Username,
		&a.PasswordHash,
		&a.FullName,
		&a.IsProtected,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAdminRepository) CreateAdmin(ctx context.Context, admin domain.Admin) (*domain.Admin, error) {
	query := `
		INSERT INTO admins (username, password_hash, full_name, is_protected, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING admin_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		admin.Username,
		admin.PasswordHash,
		admin.FullName,
		admin.IsProtected,
		admin.CreatedAt,
	).Scan(&admin.AdminID)
	if err != nil {
		if translated := translateUniqueViolation(err, "username "+admin.Username+" already in use"); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to insert admin: %w", err)
	}
	return &admin, nil
}

func (r *PgxAdminRepository) FindAdminByID(ctx context.Context, adminID int64) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE admin_id = $1;`
	admin, err := scanAdmin(r.Pool.QueryRow(ctx, query, adminID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin by id %d: %w", adminID, err)
	}
	return admin, nil
}

func (r *PgxAdminRepository) FindAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE username = $1;`
	admin, err := scanAdmin(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin by username: %w", err)
	}
	return admin, nil
}

func (r *PgxAdminRepository) FindAdmins(ctx context.Context) ([]domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY admin_id ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	admins := []domain.Admin{}
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin row: %w", err)
		}
		admins = append(admins, *admin)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating admin rows: %w", rows.Err())
	}
	return admins, nil
}

func (r *PgxAdminRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (r *PgxAdminRepository) UpdateAdmin(ctx context.Context, admin domain.Admin) error {
	query := `
		UPDATE admins
		SET username = $1, password_hash = $2, full_name = $3, is_protected = $4
		WHERE admin_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		admin.Username,
		admin.PasswordHash,
		admin.FullName,
		admin.IsProtected,
		admin.AdminID,
	)
	if err != nil {
		if translated := translateUniqueViolation(err, "username "+admin.Username+" already in use"); translated != err {
			return translated
		}
		return fmt.Errorf("failed to update admin: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAdminRepository) DeleteAdmin(ctx context.Context, adminID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM admins WHERE admin_id = $1`, adminID)
	if err != nil {
		return fmt.Errorf("failed to delete admin %d: %w", adminID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
