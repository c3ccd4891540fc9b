package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

// requireAudience gates a route group on an authenticated principal of the
// given audience. No principal is 401; a principal of the wrong variant or
// audience is 403.
func requireAudience(audience domain.Audience) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipalFromContext(c)
		if !ok {
			response.Error(c, apperrors.NewAppError(apperrors.ErrUnauthorized, "authentication required", nil))
			return
		}
		if !principal.Matches(audience) {
			response.Error(c, apperrors.NewAppError(apperrors.ErrForbidden, "principal is not allowed to access this resource", nil))
			return
		}
		c.Next()
	}
}

// RequireManage gates routes on a staff user principal.
func RequireManage() gin.HandlerFunc {
	return requireAudience(domain.AudienceManage)
}

// RequireCustomer gates routes on a customer principal.
func RequireCustomer() gin.HandlerFunc {
	return requireAudience(domain.AudienceCustomer)
}
