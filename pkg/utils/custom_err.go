package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrPlanNotFound        = errors.New("travel plan not found")
	ErrUpstreamUnavailable = errors.New("AI service unavailable")
	ErrGenerationFailed    = errors.New("failed to generate travel plan")
	ErrCancelled           = errors.New("request cancelled")
	ErrDatabaseError       = errors.New("database error")
)

// FieldViolation is one invalid request field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every offending field of a request. It matches ErrValidation.
type ValidationError struct {
	Details []FieldViolation
}

func NewValidationError(details ...FieldViolation) *ValidationError {
	return &ValidationError{Details: details}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Details))
	for i, d := range e.Details {
		parts[i] = fmt.Sprintf("%s %s", d.Field, d.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Fields returns the offending field names in order.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.Details))
	for i, d := range e.Details {
		out[i] = d.Field
	}
	return out
}
