// Package apierr defines the error kinds shared by the store, the workflow
// and the HTTP layer. Errors are created where the condition is detected,
// wrapped with %w, and translated to an HTTP status at the request boundary.
package apierr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers missing or invalid request fields, including
	// status values outside a type's enumeration.
	ErrValidation = errors.New("invalid request")
	// ErrNotFound covers lookups of absent content items or authorizations.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers violations of the one-open-authorization and
	// one-live-show invariants.
	ErrConflict = errors.New("conflict")
	// ErrAuth covers failed credential checks.
	ErrAuth = errors.New("unauthorized")
	// ErrStorage covers persistence failures. The cause is logged server
	// side; callers only see a generic message.
	ErrStorage = errors.New("storage error")
)

// Validationf builds a validation error with a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// NotFoundf builds a not-found error with a caller-facing message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Conflictf builds a conflict error with a caller-facing message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// Storage wraps a persistence failure.
func Storage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// Message returns the text to show the caller. Storage errors are reduced to
// their generic form so internals never leak.
func Message(err error) string {
	if errors.Is(err, ErrStorage) {
		return ErrStorage.Error()
	}
	return err.Error()
}
