package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/utils"
)

type adminService struct {
	BaseService
	adminRepo portsrepo.AdminRepository
}

// NewAdminService creates the system operator service.
func NewAdminService(adminRepo portsrepo.AdminRepository) portssvc.AdminSvcFacade {
	return &adminService{adminRepo: adminRepo}
}

func (s *adminService) CreateAdmin(ctx context.Context, username, password, fullName string, protected bool) (*domain.Admin, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := domain.Admin{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		IsProtected:  protected,
		CreatedAt:    time.Now(),
	}
	created, err := s.adminRepo.CreateAdmin(ctx, admin)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "admin created", slog.Int64("admin_id", created.AdminID))
	return created, nil
}

func (s *adminService) GetAdminByID(ctx context.Context, adminID int64) (*domain.Admin, error) {
	return s.adminRepo.FindAdminByID(ctx, adminID)
}

func (s *adminService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.adminRepo.FindAdmins(ctx)
}

// DeleteAdmin physically removes an admin row. The protected flag replaces
// any ordering-derived "last admin" heuristic, and a minimum-count check
// keeps at least one operator alive.
func (s *adminService) DeleteAdmin(ctx context.Context, adminID int64) error {
	admin, err := s.adminRepo.FindAdminByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.IsProtected {
		return apperrors.NewAppError(apperrors.ErrBusinessRule, "cannot delete a protected admin", nil)
	}
	count, err := s.adminRepo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return apperrors.NewAppError(apperrors.ErrBusinessRule, "cannot delete the last admin", nil)
	}
	return s.adminRepo.DeleteAdmin(ctx, adminID)
}
