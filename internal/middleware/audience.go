package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// AudienceMiddleware resolves the request audience from the configured header
// and binds it into the request context. Unrecognized or missing values fall
// back to the manage audience.
func AudienceMiddleware(headerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		audience := domain.ParseAudience(c.GetHeader(headerName))
		ctx := context.WithValue(c.Request.Context(), audienceCtxKey, audience)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
