package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/platform/config"
	"github.com/pharmago/pharmago_backend/internal/utils"
)

const (
	manageClaimKey   = "user_id"
	customerClaimKey = "customer_id"

	// jtiBytes yields an 8 character hex token id.
	jtiBytes = 4
)

// tokenService mints and validates HS256 JWTs whose identity claim key
// depends on the audience, so a token can never be silently reinterpreted
// against the wrong principal table.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// ClaimKey returns the identity claim name for the audience.
func (s *tokenService) ClaimKey(audience domain.Audience) string {
	if audience == domain.AudienceCustomer {
		return customerClaimKey
	}
	return manageClaimKey
}

func (s *tokenService) sign(audience domain.Audience, principalID int64, lifetime time.Duration) (string, error) {
	jti, err := utils.GenerateSecureRandomString(jtiBytes)
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		s.ClaimKey(audience): principalID,
		"exp":                jwt.NewNumericDate(time.Now().Add(lifetime)),
		"jti":                jti,
		"iss":                s.cfg.JWTIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// IssuePair mints an access/refresh token pair for the principal.
func (s *tokenService) IssuePair(ctx context.Context, audience domain.Audience, principalID int64) (portssvc.TokenPair, error) {
	access, err := s.sign(audience, principalID, s.cfg.AccessTokenLifetime)
	if err != nil {
		return portssvc.TokenPair{}, err
	}
	refresh, err := s.sign(audience, principalID, s.cfg.RefreshTokenLifetime)
	if err != nil {
		return portssvc.TokenPair{}, err
	}
	return portssvc.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Decode parses and validates the token, returning its raw claims.
func (s *tokenService) Decode(ctx context.Context, tokenString string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewAppError(apperrors.ErrTokenExpired, "token has expired", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrTokenMalformed, "invalid token", err)
	}
	if !token.Valid {
		return nil, apperrors.NewAppError(apperrors.ErrTokenMalformed, "invalid token", nil)
	}
	return claims, nil
}

// PrincipalID extracts the audience's identity claim. JSON numbers arrive as
// float64 from the parser; other numeric encodings are tolerated.
func (s *tokenService) PrincipalID(claims map[string]any, audience domain.Audience) (int64, bool) {
	raw, ok := claims[s.ClaimKey(audience)]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	default:
		return 0, false
	}
}
