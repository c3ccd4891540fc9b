package repositories

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// ListUsersFilter narrows and orders user listings. Keyword applies a
// case-insensitive substring match across the declared search fields (phone
// number, full name, code, email), OR-combined and ANDed with the equality
// filters.
type ListUsersFilter struct {
	Keyword  string
	Type     *domain.UserType
	Status   *domain.UserStatus
	IsDelete *bool
	OrderAsc bool
}

// UserRepository is the persistence port for staff users. Finders return the
// row regardless of the soft delete flag; callers decide how deleted rows are
// treated.
type UserRepository interface {
	// CreateUser inserts the user and persists the business code computed by
	// codeFor from the generated primary key, all in one transaction.
	CreateUser(ctx context.Context, user domain.User, codeFor func(id int64) string) (*domain.User, error)
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)
	// FindActiveUserByPhone looks up a non-deleted user by phone number.
	FindActiveUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)
	CountUsers(ctx context.Context, filter ListUsersFilter) (int, error)
	FindUsers(ctx context.Context, filter ListUsersFilter, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	HardDeleteUser(ctx context.Context, userID int64) error
}
