// Package errors defines the sentinel errors of the resolution engine.
//
// The query surface deliberately has almost no error vocabulary: no-match,
// short-query and degraded-mode outcomes are all empty results. Errors here
// cover the load path and input validation only.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is recorded (and logged) when the dataset fetch
	// or parse fails. It never reaches searchers: the engine degrades to an
	// empty record store instead.
	ErrSourceUnavailable = errors.New("dataset source unavailable")

	// ErrNotReady is returned when a caller's context expires before the
	// one-time index build completes.
	ErrNotReady = errors.New("index not ready")

	// ErrInvalidInput is returned when request validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// SourceError carries the fetch/parse failure cause for operator logs.
type SourceError struct {
	URL   string
	Cause error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("dataset source %s unavailable: %v", e.URL, e.Cause)
}

func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

func (e *SourceError) Unwrap() error { return e.Cause }

// NewSourceError creates a SourceError for the given dataset URL.
func NewSourceError(url string, cause error) *SourceError {
	return &SourceError{URL: url, Cause: cause}
}

// ValidationError represents an input validation error with field context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
