package services

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// AdminSvcFacade manages system operators. Admins are not user-facing and
// never pass through the audience pipeline.
type AdminSvcFacade interface {
	CreateAdmin(ctx context.Context, username, password, fullName string, protected bool) (*domain.Admin, error)
	GetAdminByID(ctx context.Context, adminID int64) (*domain.Admin, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	// DeleteAdmin physically removes an admin. Protected admins and the last
	// remaining admin cannot be deleted.
	DeleteAdmin(ctx context.Context, adminID int64) error
}
