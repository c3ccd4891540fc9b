package services

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
)

// UserSvcFacade is the staff user service surface. Mutations take the acting
// principal explicitly; there is no ambient current user.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	ListUsers(ctx context.Context, query dto.ListUsersQuery, page pagination.Params) ([]domain.User, pagination.Meta, error)
	UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error)
	// DeleteUser soft deletes; set hard to physically remove the row.
	DeleteUser(ctx context.Context, userID int64, actor domain.Actor, hard bool) error
}
