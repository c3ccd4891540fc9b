package domain

import "time"

// Position is a role aggregating a set of permission actions. A position
// without a workspace is a global default; the flag is derived, never set by
// callers.
type Position struct {
	PositionID  int64      `json:"position_id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description *string    `json:"description,omitempty"`
	WorkspaceID *int64     `json:"workspace_id,omitempty"`
	IsDefault   bool       `json:"is_default"`
	ActionIDs   []int64    `json:"action_ids,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Normalize derives is_default from the workspace reference.
func (p *Position) Normalize() {
	p.IsDefault = p.WorkspaceID == nil
}

// Action is one entry of the permission-action catalog.
type Action struct {
	ActionID    int64   `json:"action_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}
