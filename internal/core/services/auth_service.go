package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/utils"
)

// invalidCredentialsMessage is shared by the unknown-phone and wrong-password
// paths so callers cannot probe which phone numbers exist.
const invalidCredentialsMessage = "invalid phone number or password"

type authService struct {
	BaseService
	userRepo     portsrepo.UserRepository
	customerRepo portsrepo.CustomerRepository
	tokens       portssvc.TokenSvcFacade
}

// NewAuthService creates the login/refresh/principal-resolution service.
func NewAuthService(userRepo portsrepo.UserRepository, customerRepo portsrepo.CustomerRepository, tokens portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, customerRepo: customerRepo, tokens: tokens}
}

func invalidCredentials(cause error) error {
	return apperrors.NewAppError(apperrors.ErrUnauthorized, invalidCredentialsMessage, cause)
}

func invalidToken(cause error) error {
	return apperrors.NewAppError(apperrors.ErrTokenMalformed, "invalid token", cause)
}

// Login checks the credentials against the audience's principal table and
// mints a token pair on success.
func (s *authService) Login(ctx context.Context, audience domain.Audience, phoneNumber, password string) (portssvc.TokenPair, *domain.Principal, error) {
	var principal *domain.Principal
	var passwordHash string

	switch audience {
	case domain.AudienceCustomer:
		customer, err := s.customerRepo.FindActiveCustomerByPhone(ctx, phoneNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return portssvc.TokenPair{}, nil, invalidCredentials(err)
			}
			return portssvc.TokenPair{}, nil, fmt.Errorf("failed to look up customer for login: %w", err)
		}
		passwordHash = customer.PasswordHash
		principal = &domain.Principal{Audience: domain.AudienceCustomer, Customer: customer}
	default:
		user, err := s.userRepo.FindActiveUserByPhone(ctx, phoneNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return portssvc.TokenPair{}, nil, invalidCredentials(err)
			}
			return portssvc.TokenPair{}, nil, fmt.Errorf("failed to look up user for login: %w", err)
		}
		passwordHash = user.PasswordHash
		principal = &domain.Principal{Audience: domain.AudienceManage, User: user}
	}

	if !utils.CheckPasswordHash(password, passwordHash) {
		return portssvc.TokenPair{}, nil, invalidCredentials(nil)
	}

	pair, err := s.tokens.IssuePair(ctx, audience, principal.ID())
	if err != nil {
		return portssvc.TokenPair{}, nil, fmt.Errorf("failed to issue token pair: %w", err)
	}

	s.LogInfo(ctx, "principal logged in",
		slog.String("audience", string(audience)),
		slog.Int64("principal_id", principal.ID()))
	return pair, principal, nil
}

// Refresh validates a refresh token under the request audience and issues a
// fresh pair for the still-active principal.
func (s *authService) Refresh(ctx context.Context, audience domain.Audience, refreshToken string) (portssvc.TokenPair, error) {
	claims, err := s.tokens.Decode(ctx, refreshToken)
	if err != nil {
		return portssvc.TokenPair{}, err
	}
	principalID, ok := s.tokens.PrincipalID(claims, audience)
	if !ok {
		return portssvc.TokenPair{}, invalidToken(nil)
	}
	if _, err := s.ResolvePrincipal(ctx, audience, principalID); err != nil {
		return portssvc.TokenPair{}, err
	}
	pair, err := s.tokens.IssuePair(ctx, audience, principalID)
	if err != nil {
		return portssvc.TokenPair{}, fmt.Errorf("failed to issue token pair: %w", err)
	}
	return pair, nil
}

// ResolvePrincipal loads the principal from the table the audience selects.
// Missing or soft-deleted principals are rejected as invalid tokens; a still
// valid token does not resurrect a deleted account.
func (s *authService) ResolvePrincipal(ctx context.Context, audience domain.Audience, principalID int64) (*domain.Principal, error) {
	switch audience {
	case domain.AudienceCustomer:
		customer, err := s.customerRepo.FindCustomerByID(ctx, principalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, invalidToken(err)
			}
			return nil, fmt.Errorf("failed to load customer %d: %w", principalID, err)
		}
		if customer.IsDelete {
			return nil, invalidToken(nil)
		}
		return &domain.Principal{Audience: domain.AudienceCustomer, Customer: customer}, nil
	default:
		user, err := s.userRepo.FindUserByID(ctx, principalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, invalidToken(err)
			}
			return nil, fmt.Errorf("failed to load user %d: %w", principalID, err)
		}
		if user.IsDelete {
			return nil, invalidToken(nil)
		}
		return &domain.Principal{Audience: domain.AudienceManage, User: user}, nil
	}
}
