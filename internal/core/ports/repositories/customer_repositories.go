package repositories

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// ListCustomersFilter narrows and orders customer listings. Keyword searches
// phone number, full name, code and email.
type ListCustomersFilter struct {
	Keyword        string
	Status         *domain.UserStatus
	Representative *int64
	IsDelete       *bool
	OrderAsc       bool
}

// CustomerRepository is the persistence port for customers.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer domain.Customer, codeFor func(id int64) string) (*domain.Customer, error)
	FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	FindActiveCustomerByPhone(ctx context.Context, phoneNumber string) (*domain.Customer, error)
	CountCustomers(ctx context.Context, filter ListCustomersFilter) (int, error)
	FindCustomers(ctx context.Context, filter ListCustomersFilter, limit, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	HardDeleteCustomer(ctx context.Context, customerID int64) error
}
