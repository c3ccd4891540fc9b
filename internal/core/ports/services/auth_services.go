package services

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenSvcFacade mints and validates signed, time-boxed tokens scoped to one
// audience. The identity claim's name, not just its value, is
// audience-specific: user_id for manage, customer_id for customer.
type TokenSvcFacade interface {
	IssuePair(ctx context.Context, audience domain.Audience, principalID int64) (TokenPair, error)
	// Decode validates signature and expiry and returns the raw claims.
	Decode(ctx context.Context, token string) (map[string]any, error)
	ClaimKey(audience domain.Audience) string
	// PrincipalID extracts the identity claim matching the audience's claim
	// key; ok is false when the claim is absent or not numeric.
	PrincipalID(claims map[string]any, audience domain.Audience) (int64, bool)
}

// AuthSvcFacade implements login/refresh and principal resolution for the
// authentication middleware.
type AuthSvcFacade interface {
	// Login checks phone/password against the audience's principal table.
	// Failures are indistinguishable between unknown phone and wrong password.
	Login(ctx context.Context, audience domain.Audience, phoneNumber, password string) (TokenPair, *domain.Principal, error)
	Refresh(ctx context.Context, audience domain.Audience, refreshToken string) (TokenPair, error)
	// ResolvePrincipal loads the principal by primary key from the table the
	// audience selects. Soft-deleted principals resolve to an invalid-token
	// error even when the token is otherwise valid.
	ResolvePrincipal(ctx context.Context, audience domain.Audience, principalID int64) (*domain.Principal, error)
}
