package domain

import (
	"errors"
	"strings"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FieldViolation is one failed field-level constraint.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the per-field violations of a rejected write.
// It unwraps to ErrInvalidInput so callers can match with errors.Is.
type ValidationError struct {
	Violations []FieldViolation
}

// NewValidationError builds a ValidationError from field violations.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrInvalidInput.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
