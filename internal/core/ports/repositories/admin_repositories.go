package repositories

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// AdminRepository is the persistence port for system operators. Admin rows
// are never soft deleted.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin domain.Admin) (*domain.Admin, error)
	FindAdminByID(ctx context.Context, adminID int64) (*domain.Admin, error)
	FindAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	FindAdmins(ctx context.Context) ([]domain.Admin, error)
	CountAdmins(ctx context.Context) (int, error)
	UpdateAdmin(ctx context.Context, admin domain.Admin) error
	DeleteAdmin(ctx context.Context, adminID int64) error
}
