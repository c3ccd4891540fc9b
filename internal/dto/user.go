package dto

import (
	"time"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// CreateUserRequest defines the payload for creating a staff user.
type CreateUserRequest struct {
	PhoneNumber string     `json:"phone_number" binding:"required,min=9,max=15"`
	Password    string     `json:"password" binding:"required,min=6,max=128"`
	FullName    string     `json:"full_name" binding:"required,max=255"`
	Type        string     `json:"type" binding:"required"`
	Status      *string    `json:"status"`
	Gender      *string    `json:"gender"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

// UpdateUserRequest defines the fields allowed for updating a user.
// Pointers differentiate omitted fields from zero values.
type UpdateUserRequest struct {
	FullName    *string    `json:"full_name" binding:"omitempty,max=255"`
	Type        *string    `json:"type"`
	Status      *string    `json:"status"`
	Gender      *string    `json:"gender"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Password    *string    `json:"password" binding:"omitempty,min=6,max=128"`
	IsDelete    *bool      `json:"is_delete"`
}

// ListUsersQuery defines the filter query parameters for listing users.
type ListUsersQuery struct {
	Keyword string `form:"keyword"`
	Type    string `form:"type"`
	Status  string `form:"status"`
	OrderBy string `form:"order_by"`
}

// UserResponse is the outward shape of a staff user. The phone number is
// presented with any deletion tag stripped.
type UserResponse struct {
	UserID      int64      `json:"user_id"`
	PhoneNumber string     `json:"phone_number"`
	Code        *string    `json:"code"`
	FullName    string     `json:"full_name"`
	Gender      *string    `json:"gender,omitempty"`
	Email       *string    `json:"email,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	IsDelete    bool       `json:"is_delete"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		UserID:      u.UserID,
		PhoneNumber: u.DisplayPhoneNumber(),
		Code:        u.Code,
		FullName:    u.FullName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Type:        string(u.Type),
		Status:      string(u.Status),
		IsDelete:    u.IsDelete,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Gender != nil {
		g := string(*u.Gender)
		resp.Gender = &g
	}
	return resp
}

// ToUserResponses converts a slice of users.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
