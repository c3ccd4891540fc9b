package services

import (
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/platform/config"
)

// Compile-time interface checks.
var (
	_ portssvc.UserSvcFacade      = (*userService)(nil)
	_ portssvc.CustomerSvcFacade  = (*customerService)(nil)
	_ portssvc.AdminSvcFacade     = (*adminService)(nil)
	_ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)
	_ portssvc.PositionSvcFacade  = (*positionService)(nil)
	_ portssvc.TokenSvcFacade     = (*tokenService)(nil)
	_ portssvc.AuthSvcFacade      = (*authService)(nil)
)

// NewServiceContainer wires every service with its repository dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	tokens := NewTokenService(cfg)
	return &portssvc.ServiceContainer{
		User:      NewUserService(repos.UserRepo),
		Customer:  NewCustomerService(repos.CustomerRepo),
		Admin:     NewAdminService(repos.AdminRepo),
		Workspace: NewWorkspaceService(repos.WorkspaceRepo),
		Position:  NewPositionService(repos.PositionRepo),
		Token:     tokens,
		Auth:      NewAuthService(repos.UserRepo, repos.CustomerRepo, tokens),
	}
}
