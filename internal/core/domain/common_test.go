package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

func TestParseAudience(t *testing.T) {
	assert.Equal(t, domain.AudienceCustomer, domain.ParseAudience("customer"))
	assert.Equal(t, domain.AudienceManage, domain.ParseAudience("manage"))
	assert.Equal(t, domain.AudienceManage, domain.ParseAudience(""))
	assert.Equal(t, domain.AudienceManage, domain.ParseAudience("something-else"))
}

func TestActorAuditRef(t *testing.T) {
	user := domain.Actor{Kind: domain.ActorUser, ID: 42}
	ref := user.AuditRef()
	require.NotNil(t, ref)
	assert.Equal(t, int64(42), *ref)

	// Only staff users are recorded in audit columns.
	assert.Nil(t, domain.Actor{Kind: domain.ActorCustomer, ID: 7}.AuditRef())
	assert.Nil(t, domain.Actor{Kind: domain.ActorAdmin, ID: 1}.AuditRef())
	assert.Nil(t, domain.Actor{}.AuditRef())
}

func TestTagDeleted(t *testing.T) {
	tagged := domain.TagDeleted("0901234567", 15)
	assert.Equal(t, "0901234567__deleted__15", tagged)

	// Tagging twice is a no-op.
	assert.Equal(t, tagged, domain.TagDeleted(tagged, 15))

	// Empty values stay empty.
	assert.Equal(t, "", domain.TagDeleted("", 15))

	assert.Equal(t, "0901234567", domain.StripDeletedTag(tagged, 15))
	assert.Equal(t, "0901234567", domain.StripDeletedTag("0901234567", 15))
}

func TestSoftDeleteReconcile(t *testing.T) {
	now := time.Now()

	var f domain.SoftDeleteFields
	f.IsDelete = true
	f.Reconcile(now)
	require.NotNil(t, f.DeletedAt)
	assert.Equal(t, now, *f.DeletedAt)

	f.IsDelete = false
	f.Reconcile(now)
	assert.Nil(t, f.DeletedAt)
}

func TestUserMarkDeleted(t *testing.T) {
	now := time.Now()
	actor := domain.Actor{Kind: domain.ActorUser, ID: 9}
	user := domain.User{UserID: 3, PhoneNumber: "0901234567"}

	require.NoError(t, user.MarkDeleted(now, actor))
	assert.True(t, user.IsDelete)
	assert.Equal(t, "0901234567__deleted__3", user.PhoneNumber)
	require.NotNil(t, user.DeletedBy)
	assert.Equal(t, int64(9), *user.DeletedBy)
	assert.Equal(t, "0901234567", user.DisplayPhoneNumber())

	// Deleting an already deleted user is a reported error.
	err := user.MarkDeleted(now, actor)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDeleted)
}

func TestUserReconcileOnUndelete(t *testing.T) {
	now := time.Now()
	user := domain.User{UserID: 3, PhoneNumber: "0901234567"}
	require.NoError(t, user.MarkDeleted(now, domain.Actor{Kind: domain.ActorUser, ID: 9}))

	user.IsDelete = false
	user.Reconcile(now)

	assert.Nil(t, user.DeletedAt)
	assert.Nil(t, user.DeletedBy)
	// Restoring does not scrub the tag from the stored value.
	assert.Equal(t, "0901234567__deleted__3", user.PhoneNumber)
	assert.Equal(t, "0901234567", user.DisplayPhoneNumber())
}

func TestWorkspaceMarkDeletedTagsCode(t *testing.T) {
	w := domain.Workspace{WorkspaceID: 8, Code: "WS01"}
	require.NoError(t, w.MarkDeleted(time.Now(), domain.Actor{}))
	assert.Equal(t, "WS01__deleted__8", w.Code)
	assert.Equal(t, "WS01", w.DisplayCode())
}

func TestBusinessCode(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "ST2024031500007", domain.BusinessCode("ST", at, 7))
	assert.Equal(t, "KH2024031512345", domain.BusinessCode("KH", at, 12345))
	// Ids beyond the pad width are not truncated.
	assert.Equal(t, "AD20240315123456", domain.BusinessCode("AD", at, 123456))
}

func TestUserTypePrefixes(t *testing.T) {
	cases := map[domain.UserType]string{
		domain.UserTypeAdmin:    "AD",
		domain.UserTypeStaff:    "ST",
		domain.UserTypeManager:  "MA",
		domain.UserTypePharmacy: "PH",
		domain.UserTypeSupplier: "SU",
		domain.UserTypePartner:  "PA",
		domain.UserTypeSeller:   "SE",
		domain.UserTypeDoctor:   "DO",
	}
	for userType, prefix := range cases {
		assert.True(t, userType.Valid())
		assert.Equal(t, prefix, userType.Prefix())
	}
	assert.False(t, domain.UserType("ROBOT").Valid())
}

func TestPositionNormalize(t *testing.T) {
	global := domain.Position{}
	global.Normalize()
	assert.True(t, global.IsDefault)

	wsID := int64(4)
	scoped := domain.Position{WorkspaceID: &wsID, IsDefault: true}
	scoped.Normalize()
	assert.False(t, scoped.IsDefault)
}
