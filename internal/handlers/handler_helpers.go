package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

// bindJSON binds and validates the request body. Validation failures are
// flattened into a field-keyed map and written as a 400 envelope; the caller
// should return immediately when false is reported.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ValidationError(c, flattenBindingError(err))
		return false
	}
	return true
}

// bindQuery binds query parameters, reporting failures like bindJSON.
func bindQuery(c *gin.Context, query any) bool {
	if err := c.ShouldBindQuery(query); err != nil {
		response.ValidationError(c, flattenBindingError(err))
		return false
	}
	return true
}

// flattenBindingError converts gin binding errors into a field-keyed map.
// Nested field paths are joined with "__".
func flattenBindingError(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			// Namespace is Struct.Field.Sub; drop the struct name and join the
			// rest with the nested separator.
			parts := strings.Split(fe.Namespace(), ".")
			if len(parts) > 1 {
				parts = parts[1:]
			}
			key := strings.ToLower(strings.Join(parts, "__"))
			fields[key] = "field " + fe.Field() + " failed validation on " + fe.Tag()
		}
		return fields
	}
	fields["body"] = err.Error()
	return fields
}

// pathID parses the numeric :id-style path parameter. Non-numeric values are
// reported as a validation error; the caller should return when false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, apperrors.NewAppError(apperrors.ErrValidation, "invalid "+name+" parameter", err))
		return 0, false
	}
	return id, true
}

// hardDeleteRequested reads the ?hard=true query flag on delete endpoints.
func hardDeleteRequested(c *gin.Context) bool {
	return c.Query("hard") == "true"
}
