package dto

import (
	"time"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// CreateAdminRequest defines the payload for creating a system operator.
type CreateAdminRequest struct {
	Username    string `json:"username" binding:"required,max=150"`
	Password    string `json:"password" binding:"required,min=6,max=128"`
	FullName    string `json:"full_name" binding:"required,max=255"`
	IsProtected bool   `json:"is_protected"`
}

// AdminResponse is the outward shape of an admin.
type AdminResponse struct {
	AdminID     int64     `json:"admin_id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	IsProtected bool      `json:"is_protected"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToAdminResponse converts a domain.Admin to its response DTO.
func ToAdminResponse(a *domain.Admin) AdminResponse {
	return AdminResponse{
		AdminID:     a.AdminID,
		Username:    a.Username,
		FullName:    a.FullName,
		IsProtected: a.IsProtected,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAdminResponses converts a slice of admins.
func ToAdminResponses(admins []domain.Admin) []AdminResponse {
	out := make([]AdminResponse, len(admins))
	for i := range admins {
		out[i] = ToAdminResponse(&admins[i])
	}
	return out
}
