package domain

import "time"

// Customer is the customer-facing principal, authenticated under the
// customer audience. It shares the phone account base with User but lives in
// its own table; ids may collide numerically with staff users.
type Customer struct {
	CustomerID   int64      `json:"customer_id"`
	PhoneNumber  string     `json:"phone_number"`
	PasswordHash string     `json:"-"`
	Code         *string    `json:"code,omitempty"`
	FullName     string     `json:"full_name"`
	Gender       *Gender    `json:"gender,omitempty"`
	Email        *string    `json:"email,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Status       UserStatus `json:"status"`

	// Representative is the staff user responsible for this customer,
	// defaulted to the acting staff principal on create.
	Representative *int64 `json:"representative,omitempty"`

	AuditFields
	SoftDeleteFields
}

// CustomerCodePrefix feeds BusinessCode for customers.
const CustomerCodePrefix = "KH"

// MarkDeleted soft deletes the customer, tagging the phone number.
func (c *Customer) MarkDeleted(now time.Time, actor Actor) error {
	if err := c.markDeleted(now); err != nil {
		return err
	}
	c.PhoneNumber = TagDeleted(c.PhoneNumber, c.CustomerID)
	return nil
}

// DisplayPhoneNumber returns the phone number with any deletion tag stripped.
func (c *Customer) DisplayPhoneNumber() string {
	return StripDeletedTag(c.PhoneNumber, c.CustomerID)
}
