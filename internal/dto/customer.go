package dto

import (
	"time"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// CreateCustomerRequest defines the payload for creating a customer.
type CreateCustomerRequest struct {
	PhoneNumber    string     `json:"phone_number" binding:"required,min=9,max=15"`
	Password       string     `json:"password" binding:"required,min=6,max=128"`
	FullName       string     `json:"full_name" binding:"required,max=255"`
	Status         *string    `json:"status"`
	Gender         *string    `json:"gender"`
	Email          *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Representative *int64     `json:"representative"`
}

// UpdateCustomerRequest defines the fields allowed for updating a customer.
type UpdateCustomerRequest struct {
	FullName       *string    `json:"full_name" binding:"omitempty,max=255"`
	Status         *string    `json:"status"`
	Gender         *string    `json:"gender"`
	Email          *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Password       *string    `json:"password" binding:"omitempty,min=6,max=128"`
	Representative *int64     `json:"representative"`
	IsDelete       *bool      `json:"is_delete"`
}

// ListCustomersQuery defines the filter query parameters for listing customers.
type ListCustomersQuery struct {
	Keyword        string `form:"keyword"`
	Status         string `form:"status"`
	Representative *int64 `form:"representative"`
	OrderBy        string `form:"order_by"`
}

// CustomerResponse is the outward shape of a customer.
type CustomerResponse struct {
	CustomerID     int64      `json:"customer_id"`
	PhoneNumber    string     `json:"phone_number"`
	Code           *string    `json:"code"`
	FullName       string     `json:"full_name"`
	Gender         *string    `json:"gender,omitempty"`
	Email          *string    `json:"email,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Status         string     `json:"status"`
	Representative *int64     `json:"representative,omitempty"`
	IsDelete       bool       `json:"is_delete"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(cu *domain.Customer) CustomerResponse {
	resp := CustomerResponse{
		CustomerID:     cu.CustomerID,
		PhoneNumber:    cu.DisplayPhoneNumber(),
		Code:           cu.Code,
		FullName:       cu.FullName,
		Email:          cu.Email,
		DateOfBirth:    cu.DateOfBirth,
		Status:         string(cu.Status),
		Representative: cu.Representative,
		IsDelete:       cu.IsDelete,
		CreatedAt:      cu.CreatedAt,
		UpdatedAt:      cu.UpdatedAt,
	}
	if cu.Gender != nil {
		g := string(*cu.Gender)
		resp.Gender = &g
	}
	return resp
}

// ToCustomerResponses converts a slice of customers.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}
