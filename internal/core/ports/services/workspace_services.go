package services

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
)

// WorkspaceSvcFacade is the tenant container service surface.
type WorkspaceSvcFacade interface {
	CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, actor domain.Actor) (*domain.Workspace, error)
	GetWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error)
	ListWorkspaces(ctx context.Context, query dto.ListWorkspacesQuery, page pagination.Params) ([]domain.Workspace, pagination.Meta, error)
	UpdateWorkspace(ctx context.Context, workspaceID int64, req dto.UpdateWorkspaceRequest, actor domain.Actor) (*domain.Workspace, error)
	DeleteWorkspace(ctx context.Context, workspaceID int64, actor domain.Actor, hard bool) error

	AddMember(ctx context.Context, workspaceID int64, req dto.AddMemberRequest, actor domain.Actor) (*dto.WorkspaceMembersResponse, error)
	RemoveUserMember(ctx context.Context, workspaceID, userID int64, actor domain.Actor) error
	RemoveCustomerMember(ctx context.Context, workspaceID, customerID int64, actor domain.Actor) error
	ListMembers(ctx context.Context, workspaceID int64) (*dto.WorkspaceMembersResponse, error)
	AssignPositions(ctx context.Context, workspaceUserID int64, positionIDs []int64, actor domain.Actor) error
}
