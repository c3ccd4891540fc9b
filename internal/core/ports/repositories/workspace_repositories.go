package repositories

import (
	"context"
	"time"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// ListWorkspacesFilter narrows and orders workspace listings. Keyword
// searches name and code.
type ListWorkspacesFilter struct {
	Keyword  string
	ParentID *int64
	OwnerID  *int64
	IsDelete *bool
	OrderAsc bool
}

// WorkspaceRepository is the persistence port for workspaces and their
// membership join entities.
type WorkspaceRepository interface {
	CreateWorkspace(ctx context.Context, workspace domain.Workspace) (*domain.Workspace, error)
	FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error)
	CountWorkspaces(ctx context.Context, filter ListWorkspacesFilter) (int, error)
	FindWorkspaces(ctx context.Context, filter ListWorkspacesFilter, limit, offset int) ([]domain.Workspace, error)
	UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error
	HardDeleteWorkspace(ctx context.Context, workspaceID int64) error

	AddUserMember(ctx context.Context, workspaceID, userID int64, joinedAt time.Time) (*domain.WorkspaceUser, error)
	AddCustomerMember(ctx context.Context, workspaceID, customerID int64, joinedAt time.Time) (*domain.WorkspaceCustomer, error)
	// MarkUserLeft stamps left_at on an open staff membership.
	MarkUserLeft(ctx context.Context, workspaceID, userID int64, leftAt time.Time) error
	MarkCustomerLeft(ctx context.Context, workspaceID, customerID int64, leftAt time.Time) error
	FindUserMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceUser, error)
	FindCustomerMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceCustomer, error)
	// ReplacePositions swaps the position assignments of a staff membership.
	ReplacePositions(ctx context.Context, workspaceUserID int64, positionIDs []int64) error
}
