package dto

import (
	"time"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// CreatePositionRequest defines the payload for creating a position.
type CreatePositionRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Code        string  `json:"code" binding:"required,max=100"`
	Description *string `json:"description"`
	WorkspaceID *int64  `json:"workspace_id"`
	ActionIDs   []int64 `json:"action_ids"`
}

// UpdatePositionRequest defines the fields allowed for updating a position.
type UpdatePositionRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	ActionIDs   *[]int64 `json:"action_ids"`
}

// ListPositionsQuery defines the filter query parameters for listing positions.
type ListPositionsQuery struct {
	Keyword     string `form:"keyword"`
	WorkspaceID *int64 `form:"workspace_id"`
	IsDefault   *bool  `form:"is_default"`
	OrderBy     string `form:"order_by"`
}

// PositionResponse is the outward shape of a position.
type PositionResponse struct {
	PositionID  int64      `json:"position_id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description *string    `json:"description,omitempty"`
	WorkspaceID *int64     `json:"workspace_id,omitempty"`
	IsDefault   bool       `json:"is_default"`
	ActionIDs   []int64    `json:"action_ids"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ToPositionResponse converts a domain.Position to its response DTO.
func ToPositionResponse(p *domain.Position) PositionResponse {
	return PositionResponse{
		PositionID:  p.PositionID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		WorkspaceID: p.WorkspaceID,
		IsDefault:   p.IsDefault,
		ActionIDs:   p.ActionIDs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPositionResponses converts a slice of positions.
func ToPositionResponses(positions []domain.Position) []PositionResponse {
	out := make([]PositionResponse, len(positions))
	for i := range positions {
		out[i] = ToPositionResponse(&positions[i])
	}
	return out
}

// CreateActionRequest defines the payload for adding an action to the catalog.
type CreateActionRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Code        string  `json:"code" binding:"required,max=100"`
	Description *string `json:"description"`
}
