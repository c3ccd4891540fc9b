package domain

import "time"

// UserType classifies staff users; the prefix feeds the business code.
type UserType string

const (
	UserTypeAdmin    UserType = "ADMIN"
	UserTypeStaff    UserType = "STAFF"
	UserTypeManager  UserType = "MANAGER"
	UserTypePharmacy UserType = "PHARMACY"
	UserTypeSupplier UserType = "SUPPLIER"
	UserTypePartner  UserType = "PARTNER"
	UserTypeSeller   UserType = "SELLER"
	UserTypeDoctor   UserType = "DOCTOR"
)

var userTypePrefixes = map[UserType]string{
	UserTypeAdmin:    "AD",
	UserTypeStaff:    "ST",
	UserTypeManager:  "MA",
	UserTypePharmacy: "PH",
	UserTypeSupplier: "SU",
	UserTypePartner:  "PA",
	UserTypeSeller:   "SE",
	UserTypeDoctor:   "DO",
}

// Prefix returns the business code prefix for the user type.
func (t UserType) Prefix() string {
	return userTypePrefixes[t]
}

// Valid reports whether t is one of the recognized user types.
func (t UserType) Valid() bool {
	_, ok := userTypePrefixes[t]
	return ok
}

// UserStatus is the account activation state.
type UserStatus string

const (
	StatusActivated    UserStatus = "ACTIVATED"
	StatusNotActivated UserStatus = "NOT_ACTIVATED"
	StatusLocked       UserStatus = "LOCKED"
)

// Gender choices for principal profiles.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// User is a staff-type principal, authenticated under the manage audience.
type User struct {
	UserID       int64      `json:"user_id"`
	PhoneNumber  string     `json:"phone_number"`
	PasswordHash string     `json:"-"`
	Code         *string    `json:"code,omitempty"`
	FullName     string     `json:"full_name"`
	Gender       *Gender    `json:"gender,omitempty"`
	Email        *string    `json:"email,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Type         UserType   `json:"type"`
	Status       UserStatus `json:"status"`
	DeletedBy    *int64     `json:"deleted_by,omitempty"`
	AuditFields
	SoftDeleteFields
}

// MarkDeleted soft deletes the user. The phone number is the delete-key
// field: it gets the deletion tag so the active-rows unique constraint frees
// the value for reuse. Admin actors are not recorded as deleter.
func (u *User) MarkDeleted(now time.Time, actor Actor) error {
	if err := u.markDeleted(now); err != nil {
		return err
	}
	u.PhoneNumber = TagDeleted(u.PhoneNumber, u.UserID)
	u.DeletedBy = actor.AuditRef()
	return nil
}

// Reconcile extends the base safety net: undeleting clears the deleter
// reference. The deletion tag on the phone number is deliberately left in
// place; restoration does not scrub it.
func (u *User) Reconcile(now time.Time) {
	u.SoftDeleteFields.Reconcile(now)
	if !u.IsDelete {
		u.DeletedBy = nil
	}
}

// DisplayPhoneNumber returns the phone number with any deletion tag stripped.
func (u *User) DisplayPhoneNumber() string {
	return StripDeletedTag(u.PhoneNumber, u.UserID)
}
