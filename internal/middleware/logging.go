package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pharmago/pharmago_backend/pkg/response"
)

// maxFaultBodyBytes bounds the request body excerpt kept for fault logging.
const maxFaultBodyBytes = 2048

// replayBody serves the captured prefix before the remainder of the original
// body, so handlers still read the full payload.
type replayBody struct {
	io.Reader
	io.Closer
}

// StructuredLoggingMiddleware creates a Gin middleware handler that injects
// a request-scoped logger into the request context and logs completion.
// A truncated copy of the request body is retained so server faults can be
// logged with the payload that triggered them.
func StructuredLoggingMiddleware(baseLogger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		requestLogger := baseLogger.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		)

		var bodyExcerpt []byte
		if c.Request.Body != nil {
			bodyExcerpt, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxFaultBodyBytes))
			c.Request.Body = replayBody{
				Reader: io.MultiReader(bytes.NewReader(bodyExcerpt), c.Request.Body),
				Closer: c.Request.Body,
			}
		}

		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), requestLogger))
		response.SetFaultContext(c, requestLogger, bodyExcerpt)

		c.Next()

		latency := time.Since(start)
		requestLogger.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", latency),
		)
	}
}
