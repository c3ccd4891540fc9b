package services

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
)

// CustomerSvcFacade is the customer service surface.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actor domain.Actor) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context, query dto.ListCustomersQuery, page pagination.Params) ([]domain.Customer, pagination.Meta, error)
	UpdateCustomer(ctx context.Context, customerID int64, req dto.UpdateCustomerRequest, actor domain.Actor) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64, actor domain.Actor, hard bool) error
}
