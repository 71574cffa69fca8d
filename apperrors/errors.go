// Package apperrors defines the error taxonomy shared by the core
// services and the HTTP layer: validation (bad input, reported before
// any work starts), generation-exhausted (valid but jointly
// unsatisfiable filters), not-found and conflict.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or jointly-impossible inputs with a
// field-level detail payload. It is always raised before any sampling
// or repository write happens.
type ValidationError struct {
	Message string
	Details map[string][]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(message, field, detail string) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: map[string][]string{field: {detail}},
	}
}

// GenerationFailedError means the filters were individually valid but no
// conforming combination was found within the retry budget. The caller
// may relax filters and retry; the generator never silently returns a
// non-conforming result instead.
type GenerationFailedError struct {
	Attempts int
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("failed to draw numbers within retry limit (%d)", e.Attempts)
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ConflictError reports a uniqueness violation, e.g. ingesting a draw
// number that already exists.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsGenerationFailed reports whether err is (or wraps) a GenerationFailedError.
func IsGenerationFailed(err error) bool {
	var ge *GenerationFailedError
	return errors.As(err, &ge)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
