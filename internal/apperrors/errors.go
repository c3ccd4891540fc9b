package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated principal is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyDeleted indicates a soft delete was attempted on an entity that is already deleted.
var ErrAlreadyDeleted = errors.New("resource already deleted")

// ErrPageOutOfRange indicates a pagination request beyond the last page.
var ErrPageOutOfRange = errors.New("page out of range")

// ErrTokenExpired indicates a JWT whose expiry has passed.
var ErrTokenExpired = errors.New("token has expired")

// ErrTokenMalformed indicates a JWT with an invalid signature or structure.
var ErrTokenMalformed = errors.New("invalid token")

// ErrBusinessRule indicates a domain rule violation that is reported, not fatal.
var ErrBusinessRule = errors.New("business rule violation")

// ErrInternal indicates an unexpected server-side fault.
var ErrInternal = errors.New("internal server error")

// AppError carries an error with a human readable message and an optional cause.
// It wraps one of the sentinel errors above so callers can match with errors.Is.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

// NewAppError builds an AppError around the given sentinel kind.
func NewAppError(kind error, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: cause}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is lets errors.Is match the sentinel kind as well as the wrapped cause.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}
