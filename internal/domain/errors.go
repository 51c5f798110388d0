package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrValidation = errors.New("validation error")

	// ErrProvisioning marks a model or data artifact that could not be
	// made available on local storage. An engine cannot be constructed
	// without its artifacts, so callers should treat this as "service
	// unusable" for the affected direction.
	ErrProvisioning = errors.New("provisioning failed")

	// ErrMalformedOutput marks decoder output that violates the
	// line-record contract. It indicates an integration fault with the
	// decode oracle, not a problem with the caller's input.
	ErrMalformedOutput = errors.New("malformed decoder output")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
