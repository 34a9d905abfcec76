// Package shared holds the error taxonomy and small helpers used across
// the entity stores and the request boundary.
package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates an unknown id or a soft-deleted record
	// accessed by id.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a rejected payload.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a state conflict, e.g. a cascade delete
	// blocked by dependents or a commit of a processed transfer.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized indicates a missing or unknown API key.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates an authenticated caller without access to
	// the resource/method pair.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Unwrap lets callers match the error with errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error { return ErrValidation }

// IsDomainError reports whether err belongs to the taxonomy above, i.e.
// it is an expected rejection rather than an internal failure.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden)
}
