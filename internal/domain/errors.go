package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation marks malformed input, rejected before any store access.
	ErrValidation = errors.New("validation failed")
	// ErrAuth marks an unknown identifier or a missing/invalid session.
	ErrAuth = errors.New("not authenticated")
	// ErrNotFound marks a missing session user or referenced row.
	ErrNotFound = errors.New("not found")
	// ErrAlreadySeeded is returned by the seeder when reference data exists.
	ErrAlreadySeeded = errors.New("reference data already seeded")
)

// ValidationError carries per-field failures (field -> rule).
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return e.Message + " (" + strings.Join(names, ", ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// AuthError is returned for credentials that match no known identity.
type AuthError struct {
	Message string
}

func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return ErrAuth }
