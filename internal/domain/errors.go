// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidScore is returned when a review score is outside 0-100.
	ErrInvalidScore = errors.New("score must be between 0 and 100")

	// ErrInvalidDifficulty is returned when a difficulty tag is unknown.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidDuration is returned when a duration is zero or negative.
	ErrInvalidDuration = errors.New("duration must be positive")

	// ErrTargetDateInPast is returned when a plan's target date is not in the future.
	ErrTargetDateInPast = errors.New("target date must be in the future")

	// ErrNoTopics is returned when plan generation is requested with no topics.
	ErrNoTopics = errors.New("at least one topic is required")
)

// ValidationError wraps a field-level validation failure with enough context
// for the transport layer to build a useful 400 response. It always unwraps
// to ErrValidation so callers can branch with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Unwrap returns the wrapped error, or ErrValidation when none was set.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// IsValidationError reports whether err is a domain validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidScore) ||
		errors.Is(err, ErrInvalidDifficulty) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrTargetDateInPast) ||
		errors.Is(err, ErrNoTopics)
}
