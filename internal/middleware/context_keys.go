package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// contextKey is a private key type so context values cannot collide with
// other packages.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	audienceCtxKey  = contextKey("audience")
	principalCtxKey = contextKey("principal")
	tokenCtxKey     = contextKey("token")
)

// WithLogger returns a context carrying the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns the default logger if none is present.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, principal *domain.Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, principal)
}

// GetAudienceFromContext retrieves the request audience resolved by
// AudienceMiddleware. Requests that skipped the middleware fall back to the
// manage audience, matching the header default.
func GetAudienceFromContext(c *gin.Context) domain.Audience {
	audience, ok := c.Request.Context().Value(audienceCtxKey).(domain.Audience)
	if !ok {
		return domain.AudienceManage
	}
	return audience
}

// GetPrincipalFromContext retrieves the authenticated principal, if any.
func GetPrincipalFromContext(c *gin.Context) (*domain.Principal, bool) {
	principal, ok := c.Request.Context().Value(principalCtxKey).(*domain.Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}

// GetTokenFromContext retrieves the raw bearer token bound by AuthMiddleware.
func GetTokenFromContext(c *gin.Context) (string, bool) {
	token, ok := c.Request.Context().Value(tokenCtxKey).(string)
	return token, ok && token != ""
}

// ActorFromContext derives the mutation actor from the authenticated
// principal. Unauthenticated requests yield the zero actor.
func ActorFromContext(c *gin.Context) domain.Actor {
	principal, ok := GetPrincipalFromContext(c)
	if !ok {
		return domain.Actor{}
	}
	return principal.Actor()
}
