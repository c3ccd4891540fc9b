package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
)

// Audience selects which principal table governs a request.
type Audience string

const (
	AudienceManage   Audience = "manage"
	AudienceCustomer Audience = "customer"
)

// ParseAudience maps a raw header value to an Audience.
// Unrecognized or empty values fall back to manage.
func ParseAudience(raw string) Audience {
	if Audience(raw) == AudienceCustomer {
		return AudienceCustomer
	}
	return AudienceManage
}

// ActorKind discriminates who is performing a mutation.
type ActorKind string

const (
	ActorNone     ActorKind = ""
	ActorUser     ActorKind = "user"
	ActorCustomer ActorKind = "customer"
	ActorAdmin    ActorKind = "admin"
)

// Actor identifies the principal performing a service operation. It is passed
// explicitly into create/update/delete calls; there is no ambient current user.
type Actor struct {
	Kind ActorKind
	ID   int64
}

// AuditRef returns the actor's id when it should be recorded in created_by /
// updated_by / deleted_by columns. Those columns reference staff users, so
// customer and admin actors are not recorded.
func (a Actor) AuditRef() *int64 {
	if a.Kind != ActorUser {
		return nil
	}
	id := a.ID
	return &id
}

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy *int64     `json:"created_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UpdatedBy *int64     `json:"updated_by,omitempty"`
}

// Touch stamps the audit fields for an update by the given actor.
func (f *AuditFields) Touch(now time.Time, actor Actor) {
	f.UpdatedAt = &now
	if ref := actor.AuditRef(); ref != nil {
		f.UpdatedBy = ref
	}
}

// SoftDeleteFields is embedded by entities that support logical deletion.
type SoftDeleteFields struct {
	IsDelete  bool       `json:"is_delete"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// markDeleted flips the soft delete flag. Deleting twice is a reported error.
func (s *SoftDeleteFields) markDeleted(now time.Time) error {
	if s.IsDelete {
		return apperrors.ErrAlreadyDeleted
	}
	s.IsDelete = true
	s.DeletedAt = &now
	return nil
}

// Reconcile keeps deleted_at consistent with is_delete on every persist.
// It is a safety net independent of the explicit delete path: setting the
// flag true without a timestamp stamps one, clearing the flag clears it.
func (s *SoftDeleteFields) Reconcile(now time.Time) {
	if s.IsDelete && s.DeletedAt == nil {
		s.DeletedAt = &now
	}
	if !s.IsDelete && s.DeletedAt != nil {
		s.DeletedAt = nil
	}
}

// DeletedTag is the suffix appended to delete-key fields of the entity with
// the given id, so partial unique constraints over active rows stay
// satisfiable while history is retained.
func DeletedTag(id int64) string {
	return fmt.Sprintf("__deleted__%d", id)
}

// TagDeleted appends the deletion tag to value unless it already ends with it.
func TagDeleted(value string, id int64) string {
	tag := DeletedTag(id)
	if value == "" || strings.HasSuffix(value, tag) {
		return value
	}
	return value + tag
}

// StripDeletedTag removes the deletion tag for display purposes. Stored values
// keep the tag; only the read layer strips it.
func StripDeletedTag(value string, id int64) string {
	return strings.TrimSuffix(value, DeletedTag(id))
}

// BusinessCode builds the post-insert business identifier:
// type prefix + current date + zero padded primary key.
func BusinessCode(prefix string, now time.Time, id int64) string {
	return fmt.Sprintf("%s%s%05d", prefix, now.Format("20060102"), id)
}
