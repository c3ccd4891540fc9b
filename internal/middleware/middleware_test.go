package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/core/services"
	"github.com/pharmago/pharmago_backend/internal/middleware"
	"github.com/pharmago/pharmago_backend/internal/platform/config"
)

const audienceHeader = "X-Client-Audience"

// --- Mock AuthSvcFacade ---

type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func (m *MockAuthService) Login(ctx context.Context, audience domain.Audience, phoneNumber, password string) (portssvc.TokenPair, *domain.Principal, error) {
	args := m.Called(ctx, audience, phoneNumber, password)
	var principal *domain.Principal
	if args.Get(1) != nil {
		principal = args.Get(1).(*domain.Principal)
	}
	return args.Get(0).(portssvc.TokenPair), principal, args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, audience domain.Audience, refreshToken string) (portssvc.TokenPair, error) {
	args := m.Called(ctx, audience, refreshToken)
	return args.Get(0).(portssvc.TokenPair), args.Error(1)
}

func (m *MockAuthService) ResolvePrincipal(ctx context.Context, audience domain.Audience, principalID int64) (*domain.Principal, error) {
	args := m.Called(ctx, audience, principalID)
	var principal *domain.Principal
	if args.Get(0) != nil {
		principal = args.Get(0).(*domain.Principal)
	}
	return principal, args.Error(1)
}

// --- Helpers ---

func testTokenService() portssvc.TokenSvcFacade {
	return services.NewTokenService(&config.Config{
		JWTSecret:            "middleware-test-secret",
		JWTIssuer:            "test-issuer",
		AccessTokenLifetime:  5 * time.Minute,
		RefreshTokenLifetime: time.Hour,
	})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AudienceMiddleware(audienceHeader))
	return r
}

// --- AudienceMiddleware ---

func TestAudienceMiddlewareResolvesHeader(t *testing.T) {
	r := newTestRouter()
	var seen domain.Audience
	r.GET("/probe", func(c *gin.Context) {
		seen = middleware.GetAudienceFromContext(c)
		c.Status(http.StatusOK)
	})

	cases := map[string]domain.Audience{
		"customer": domain.AudienceCustomer,
		"manage":   domain.AudienceManage,
		"":         domain.AudienceManage,
		"garbage":  domain.AudienceManage,
	}
	for header, want := range cases {
		req := httptest.NewRequest("GET", "/probe", nil)
		if header != "" {
			req.Header.Set(audienceHeader, header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, want, seen, "header %q", header)
	}
}

// --- AuthMiddleware ---

func TestAuthMiddlewareMissingHeaderPassesThrough(t *testing.T) {
	tokens := testTokenService()
	auth := new(MockAuthService)

	r := newTestRouter()
	r.Use(middleware.AuthMiddleware(tokens, auth))
	r.GET("/probe", func(c *gin.Context) {
		_, ok := middleware.GetPrincipalFromContext(c)
		assert.False(t, ok)
		assert.Equal(t, domain.Actor{}, middleware.ActorFromContext(c))
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/probe", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := newTestRouter()
	r.Use(middleware.AuthMiddleware(testTokenService(), new(MockAuthService)))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "NotBearer")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "authorization header format must be Bearer {token}", body["message"])
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newTestRouter()
	r.Use(middleware.AuthMiddleware(testTokenService(), new(MockAuthService)))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareBindsPrincipal(t *testing.T) {
	tokens := testTokenService()
	auth := new(MockAuthService)
	principal := &domain.Principal{
		Audience: domain.AudienceManage,
		User:     &domain.User{UserID: 42, PhoneNumber: "0901234567"},
	}
	auth.On("ResolvePrincipal", mock.Anything, domain.AudienceManage, int64(42)).Return(principal, nil).Once()

	pair, err := tokens.IssuePair(context.Background(), domain.AudienceManage, 42)
	require.NoError(t, err)

	r := newTestRouter()
	r.Use(middleware.AuthMiddleware(tokens, auth))
	r.GET("/probe", func(c *gin.Context) {
		got, ok := middleware.GetPrincipalFromContext(c)
		require.True(t, ok)
		assert.Equal(t, int64(42), got.ID())

		raw, ok := middleware.GetTokenFromContext(c)
		require.True(t, ok)
		assert.Equal(t, pair.AccessToken, raw)

		assert.Equal(t, domain.Actor{Kind: domain.ActorUser, ID: 42}, middleware.ActorFromContext(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	auth.AssertExpectations(t)
}

func TestAuthMiddlewareCrossAudienceToken(t *testing.T) {
	tokens := testTokenService()
	auth := new(MockAuthService)

	// Manage token presented under the customer audience carries no
	// customer_id claim.
	pair, err := tokens.IssuePair(context.Background(), domain.AudienceManage, 42)
	require.NoError(t, err)

	r := newTestRouter()
	r.Use(middleware.AuthMiddleware(tokens, auth))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(audienceHeader, "customer")
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	auth.AssertNotCalled(t, "ResolvePrincipal", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthMiddlewareRejectedPrincipal(t *testing.T) {
	tokens := testTokenService()
	auth := new(MockAuthService)
	auth.On("ResolvePrincipal", mock.Anything, domain.AudienceManage, int64(42)).
		Return(nil, apperrors.NewAppError(apperrors.ErrTokenMalformed, "invalid token", nil)).Once()

	pair, err := tokens.IssuePair(context.Background(), domain.AudienceManage, 42)
	require.NoError(t, err)

	r := newTestRouter()
	r.Use(middleware.AuthMiddleware(tokens, auth))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	auth.AssertExpectations(t)
}

// --- Permission gates ---

// principalInjector binds a principal directly, bypassing the token path.
func principalInjector(principal *domain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

func TestRequireManageWithoutPrincipal(t *testing.T) {
	r := newTestRouter()
	r.GET("/probe", middleware.RequireManage(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "authentication required", body["message"])
}

func TestRequireManageWithCustomerPrincipal(t *testing.T) {
	principal := &domain.Principal{
		Audience: domain.AudienceCustomer,
		Customer: &domain.Customer{CustomerID: 7},
	}
	r := newTestRouter()
	r.GET("/probe", principalInjector(principal), middleware.RequireManage(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(audienceHeader, "customer")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "principal is not allowed to access this resource", body["message"])
}

func TestRequireManageWithUserPrincipal(t *testing.T) {
	principal := &domain.Principal{
		Audience: domain.AudienceManage,
		User:     &domain.User{UserID: 42},
	}
	r := newTestRouter()
	r.GET("/probe", principalInjector(principal), middleware.RequireManage(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/probe", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireCustomerWithUserPrincipal(t *testing.T) {
	principal := &domain.Principal{
		Audience: domain.AudienceManage,
		User:     &domain.User{UserID: 42},
	}
	r := newTestRouter()
	r.GET("/probe", principalInjector(principal), middleware.RequireCustomer(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/probe", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
