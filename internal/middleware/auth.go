package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

// AuthMiddleware decodes the bearer token under the request audience and
// binds the resolved principal into the context. A missing header is not an
// error; the request proceeds unauthenticated and the permission gates decide
// whether that is acceptable.
func AuthMiddleware(tokens portssvc.TokenSvcFacade, auth portssvc.AuthSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("authorization header format invalid")
			response.Error(c, apperrors.NewAppError(apperrors.ErrTokenMalformed, "authorization header format must be Bearer {token}", nil))
			return
		}
		tokenString := parts[1]

		claims, err := tokens.Decode(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("token rejected", slog.String("error", err.Error()))
			response.Error(c, err)
			return
		}

		audience := GetAudienceFromContext(c)
		principalID, ok := tokens.PrincipalID(claims, audience)
		if !ok {
			logger.Warn("identity claim missing from token", slog.String("audience", string(audience)))
			response.Error(c, apperrors.NewAppError(apperrors.ErrTokenMalformed, "invalid token", nil))
			return
		}

		principal, err := auth.ResolvePrincipal(c.Request.Context(), audience, principalID)
		if err != nil {
			logger.Warn("principal resolution failed", slog.String("error", err.Error()))
			response.Error(c, err)
			return
		}

		enrichedLogger := logger.With(
			slog.String("audience", string(audience)),
			slog.Int64("principal_id", principal.ID()),
		)
		ctx := WithPrincipal(c.Request.Context(), principal)
		ctx = context.WithValue(ctx, tokenCtxKey, tokenString)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
