package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/internal/utils"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
)

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepository
}

// NewCustomerService creates the customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepository) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actor domain.Actor) (*domain.Customer, error) {
	status := domain.StatusActivated
	if req.Status != nil {
		status = domain.UserStatus(*req.Status)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	customer := domain.Customer{
		PhoneNumber:    req.PhoneNumber,
		PasswordHash:   hash,
		FullName:       req.FullName,
		Email:          req.Email,
		DateOfBirth:    req.DateOfBirth,
		Status:         status,
		Representative: req.Representative,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: actor.AuditRef(),
		},
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		customer.Gender = &g
	}
	// The acting staff principal becomes the representative unless one was
	// named explicitly.
	if customer.Representative == nil {
		customer.Representative = actor.AuditRef()
	}

	created, err := s.customerRepo.CreateCustomer(ctx, customer, func(id int64) string {
		return domain.BusinessCode(domain.CustomerCodePrefix, now, id)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "customer created", slog.Int64("customer_id", created.CustomerID))
	return created, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, query dto.ListCustomersQuery, page pagination.Params) ([]domain.Customer, pagination.Meta, error) {
	filter := portsrepo.ListCustomersFilter{
		Keyword:        query.Keyword,
		Representative: query.Representative,
		OrderAsc:       query.OrderBy == "asc",
	}
	if query.Status != "" {
		st := domain.UserStatus(query.Status)
		filter.Status = &st
	}

	count, err := s.customerRepo.CountCustomers(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	window, err := page.Window(count)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	customers, err := s.customerRepo.FindCustomers(ctx, filter, window.Limit, window.Offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return customers, page.Meta(count), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, req dto.UpdateCustomerRequest, actor domain.Actor) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		customer.FullName = *req.FullName
	}
	if req.Status != nil {
		customer.Status = domain.UserStatus(*req.Status)
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		customer.Gender = &g
	}
	if req.Email != nil {
		customer.Email = req.Email
	}
	if req.DateOfBirth != nil {
		customer.DateOfBirth = req.DateOfBirth
	}
	if req.Representative != nil {
		customer.Representative = req.Representative
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		customer.PasswordHash = hash
	}
	if req.IsDelete != nil {
		customer.IsDelete = *req.IsDelete
	}

	now := time.Now()
	customer.Touch(now, actor)
	customer.Reconcile(now)

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64, actor domain.Actor, hard bool) error {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return err
	}

	if hard {
		return s.customerRepo.HardDeleteCustomer(ctx, customerID)
	}

	if err := customer.MarkDeleted(time.Now(), actor); err != nil {
		return err
	}
	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return err
	}

	s.LogInfo(ctx, "customer soft deleted", slog.Int64("customer_id", customerID))
	return nil
}
