package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
)

// Envelope is the uniform response body returned by every endpoint.
type Envelope struct {
	Status     int    `json:"status"`
	Success    bool   `json:"success"`
	StatusText string `json:"status_text"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
	Data       any    `json:"data"`
	Metadata   any    `json:"metadata"`
	Errors     any    `json:"errors,omitempty"`
}

// debugKey marks requests whose error responses may carry detail.
const debugKey = "response.debug"

// DebugMiddleware stores the debug flag so error responses know whether to
// include the errors field.
func DebugMiddleware(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(debugKey, debug)
		c.Next()
	}
}

func build(status int, message string, data, metadata any) Envelope {
	if message == "" {
		message = http.StatusText(status)
	}
	return Envelope{
		Status:     status,
		Success:    status >= 200 && status < 300,
		StatusText: http.StatusText(status),
		Message:    message,
		Timestamp:  time.Now().Unix(),
		Data:       data,
		Metadata:   metadata,
	}
}

// OK writes a 200 envelope around data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, build(http.StatusOK, "", data, nil))
}

// OKWithMeta writes a 200 envelope with metadata (e.g. pagination).
func OKWithMeta(c *gin.Context, data, metadata any) {
	c.JSON(http.StatusOK, build(http.StatusOK, "", data, metadata))
}

// Created writes a 201 envelope around data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, build(http.StatusCreated, "", data, nil))
}

// Deleted acknowledges a completed delete. The header and the envelope carry
// the same status so clients can branch on either.
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, build(http.StatusOK, "deleted", nil, nil))
}

// StatusOf translates an error into its HTTP-equivalent status code.
// First matching rule wins.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrPageOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenMalformed):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrAlreadyDeleted),
		errors.Is(err, apperrors.ErrBusinessRule):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error translates err into the envelope. Server faults never leak detail to
// the client; in debug mode the errors field carries the underlying error.
func Error(c *gin.Context, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		logFault(c, err)
	}

	message := http.StatusText(status)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" && status != http.StatusInternalServerError {
		message = appErr.Message
	} else if status != http.StatusInternalServerError {
		message = err.Error()
	}

	env := build(status, message, nil, nil)
	if debug, ok := c.Get(debugKey); ok && debug == true {
		env.Errors = err.Error()
	}
	c.AbortWithStatusJSON(status, env)
}

// ValidationError flattens a field-keyed error map into the envelope. Nested
// field paths are joined with "__" by the caller; the first field message
// becomes the top-level message.
func ValidationError(c *gin.Context, fields map[string]string) {
	message := http.StatusText(http.StatusBadRequest)
	for _, v := range fields {
		message = v
		break
	}
	env := build(http.StatusBadRequest, message, nil, nil)
	if debug, ok := c.Get(debugKey); ok && debug == true {
		env.Errors = fields
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, env)
}
