package domain

import "time"

// Workspace is a named tenant container. Workspaces form a tree through the
// optional parent reference and hold memberships for both principal
// variants. The code is unique among active workspaces and is the delete-key
// field for soft deletion.
type Workspace struct {
	WorkspaceID int64   `json:"workspace_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty"`
	OwnerID     *int64  `json:"owner_id,omitempty"`
	AuditFields
	SoftDeleteFields
}

// MarkDeleted soft deletes the workspace, tagging the code.
func (w *Workspace) MarkDeleted(now time.Time, actor Actor) error {
	if err := w.markDeleted(now); err != nil {
		return err
	}
	w.Code = TagDeleted(w.Code, w.WorkspaceID)
	return nil
}

// DisplayCode returns the workspace code with any deletion tag stripped.
func (w *Workspace) DisplayCode() string {
	return StripDeletedTag(w.Code, w.WorkspaceID)
}

// WorkspaceUser is the staff membership join entity. Position assignments
// hang off the membership, not the user.
type WorkspaceUser struct {
	WorkspaceUserID int64      `json:"workspace_user_id"`
	WorkspaceID     int64      `json:"workspace_id"`
	UserID          int64      `json:"user_id"`
	JoinedAt        time.Time  `json:"joined_at"`
	LeftAt          *time.Time `json:"left_at,omitempty"`
	PositionIDs     []int64    `json:"position_ids,omitempty"`
}

// WorkspaceCustomer is the customer membership join entity.
type WorkspaceCustomer struct {
	WorkspaceCustomerID int64      `json:"workspace_customer_id"`
	WorkspaceID         int64      `json:"workspace_id"`
	CustomerID          int64      `json:"customer_id"`
	JoinedAt            time.Time  `json:"joined_at"`
	LeftAt              *time.Time `json:"left_at,omitempty"`
}
