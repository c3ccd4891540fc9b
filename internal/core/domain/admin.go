package domain

import "time"

// Admin is the privileged system operator. Admins are not user-facing: they
// never authenticate through the audience pipeline and cannot be soft
// deleted. Deletion is physical and guarded by the protected flag and a
// minimum-count check in the service layer.
type Admin struct {
	AdminID      int64     `json:"admin_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	IsProtected  bool      `json:"is_protected"`
	CreatedAt    time.Time `json:"created_at"`
}
