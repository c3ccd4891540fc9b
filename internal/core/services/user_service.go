package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/internal/utils"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates the staff user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func validationError(message string) error {
	return apperrors.NewAppError(apperrors.ErrValidation, message, nil)
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error) {
	userType := domain.UserType(req.Type)
	if !userType.Valid() {
		return nil, validationError("invalid user type: " + req.Type)
	}
	status := domain.StatusActivated
	if req.Status != nil {
		status = domain.UserStatus(*req.Status)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		FullName:     req.FullName,
		Email:        req.Email,
		DateOfBirth:  req.DateOfBirth,
		Type:         userType,
		Status:       status,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: actor.AuditRef(),
		},
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		user.Gender = &g
	}

	// The business code is derived from the generated primary key; the
	// repository runs the insert and the code update in one transaction.
	created, err := s.userRepo.CreateUser(ctx, user, func(id int64) string {
		return domain.BusinessCode(userType.Prefix(), now, id)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "user created",
		slog.Int64("user_id", created.UserID),
		slog.String("type", string(created.Type)))
	return created, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, query dto.ListUsersQuery, page pagination.Params) ([]domain.User, pagination.Meta, error) {
	filter := portsrepo.ListUsersFilter{
		Keyword:  query.Keyword,
		OrderAsc: query.OrderBy == "asc",
	}
	if query.Type != "" {
		t := domain.UserType(query.Type)
		filter.Type = &t
	}
	if query.Status != "" {
		st := domain.UserStatus(query.Status)
		filter.Status = &st
	}

	count, err := s.userRepo.CountUsers(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	window, err := page.Window(count)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	users, err := s.userRepo.FindUsers(ctx, filter, window.Limit, window.Offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, page.Meta(count), nil
}

func (s *userService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		userType := domain.UserType(*req.Type)
		if !userType.Valid() {
			return nil, validationError("invalid user type: " + *req.Type)
		}
		user.Type = userType
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Status != nil {
		user.Status = domain.UserStatus(*req.Status)
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		user.Gender = &g
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.IsDelete != nil {
		user.IsDelete = *req.IsDelete
	}

	now := time.Now()
	user.Touch(now, actor)
	// Safety net: deleted_at always follows is_delete on persist. Undeleting
	// does not strip the deletion tag from the phone number.
	user.Reconcile(now)

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int64, actor domain.Actor, hard bool) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if hard {
		return s.userRepo.HardDeleteUser(ctx, userID)
	}

	if err := user.MarkDeleted(time.Now(), actor); err != nil {
		return err
	}
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return err
	}

	s.LogInfo(ctx, "user soft deleted", slog.Int64("user_id", userID))
	return nil
}
