package dto

import (
	"time"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// CreateWorkspaceRequest defines the payload for creating a workspace.
type CreateWorkspaceRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Code        string  `json:"code" binding:"required,max=100"`
	Description *string `json:"description"`
	ParentID    *int64  `json:"parent_id"`
	OwnerID     *int64  `json:"owner_id"`
}

// UpdateWorkspaceRequest defines the fields allowed for updating a workspace.
type UpdateWorkspaceRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	ParentID    *int64  `json:"parent_id"`
	OwnerID     *int64  `json:"owner_id"`
	IsDelete    *bool   `json:"is_delete"`
}

// ListWorkspacesQuery defines the filter query parameters for listing workspaces.
type ListWorkspacesQuery struct {
	Keyword  string `form:"keyword"`
	ParentID *int64 `form:"parent_id"`
	OwnerID  *int64 `form:"owner_id"`
	OrderBy  string `form:"order_by"`
}

// AddMemberRequest adds a principal to a workspace.
type AddMemberRequest struct {
	UserID     *int64 `json:"user_id"`
	CustomerID *int64 `json:"customer_id"`
}

// AssignPositionsRequest replaces the position set of a staff membership.
type AssignPositionsRequest struct {
	PositionIDs []int64 `json:"position_ids" binding:"required"`
}

// WorkspaceResponse is the outward shape of a workspace.
type WorkspaceResponse struct {
	WorkspaceID int64      `json:"workspace_id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description *string    `json:"description,omitempty"`
	ParentID    *int64     `json:"parent_id,omitempty"`
	OwnerID     *int64     `json:"owner_id,omitempty"`
	IsDelete    bool       `json:"is_delete"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ToWorkspaceResponse converts a domain.Workspace to its response DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID: w.WorkspaceID,
		Name:        w.Name,
		Code:        w.DisplayCode(),
		Description: w.Description,
		ParentID:    w.ParentID,
		OwnerID:     w.OwnerID,
		IsDelete:    w.IsDelete,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// ToWorkspaceResponses converts a slice of workspaces.
func ToWorkspaceResponses(workspaces []domain.Workspace) []WorkspaceResponse {
	out := make([]WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		out[i] = ToWorkspaceResponse(&workspaces[i])
	}
	return out
}

// WorkspaceMembersResponse bundles both membership variants.
type WorkspaceMembersResponse struct {
	Users     []domain.WorkspaceUser     `json:"users"`
	Customers []domain.WorkspaceCustomer `json:"customers"`
}
