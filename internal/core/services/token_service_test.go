package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	"github.com/pharmago/pharmago_backend/internal/core/services"
	"github.com/pharmago/pharmago_backend/internal/platform/config"
)

func tokenTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTIssuer:            "test-issuer",
		AccessTokenLifetime:  5 * time.Minute,
		RefreshTokenLifetime: 720 * time.Hour,
	}
}

func TestClaimKeyPerAudience(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())
	assert.Equal(t, "user_id", svc.ClaimKey(domain.AudienceManage))
	assert.Equal(t, "customer_id", svc.ClaimKey(domain.AudienceCustomer))
}

func TestIssueAndDecodeRoundTrip(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, domain.AudienceManage, 42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.Decode(ctx, pair.AccessToken)
	require.NoError(t, err)

	id, ok := svc.PrincipalID(claims, domain.AudienceManage)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	assert.Equal(t, "test-issuer", claims["iss"])
	assert.NotEmpty(t, claims["jti"])
}

func TestDecodeRejectsWrongAudienceClaim(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, domain.AudienceCustomer, 7)
	require.NoError(t, err)

	claims, err := svc.Decode(ctx, pair.AccessToken)
	require.NoError(t, err)

	// A customer token carries customer_id; reading it under the manage
	// audience finds no identity claim.
	_, ok := svc.PrincipalID(claims, domain.AudienceManage)
	assert.False(t, ok)

	id, ok := svc.PrincipalID(claims, domain.AudienceCustomer)
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestDecodeExpiredToken(t *testing.T) {
	cfg := tokenTestConfig()
	cfg.AccessTokenLifetime = -time.Minute
	svc := services.NewTokenService(cfg)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, domain.AudienceManage, 1)
	require.NoError(t, err)

	_, err = svc.Decode(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestDecodeGarbageToken(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())
	_, err := svc.Decode(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestDecodeWrongSecret(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())
	pair, err := svc.IssuePair(context.Background(), domain.AudienceManage, 1)
	require.NoError(t, err)

	other := tokenTestConfig()
	other.JWTSecret = "different-secret"
	otherSvc := services.NewTokenService(other)

	_, err = otherSvc.Decode(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestPrincipalIDNumericEncodings(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())

	id, ok := svc.PrincipalID(map[string]any{"user_id": float64(5)}, domain.AudienceManage)
	require.True(t, ok)
	assert.Equal(t, int64(5), id)

	id, ok = svc.PrincipalID(map[string]any{"user_id": int64(6)}, domain.AudienceManage)
	require.True(t, ok)
	assert.Equal(t, int64(6), id)

	_, ok = svc.PrincipalID(map[string]any{"user_id": "7"}, domain.AudienceManage)
	assert.False(t, ok)
}
