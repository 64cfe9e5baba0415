// Package apperrors defines the error taxonomy shared by the auth guard,
// the file manager and the HTTP handlers. Handlers map these onto status
// codes; raw store errors never reach a response.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers missing/invalid/expired tokens and bad
	// login credentials alike.
	ErrUnauthorized = errors.New("Unauthorized")

	// ErrNotFound also covers "exists but not visible to you" — the two
	// cases are deliberately indistinguishable.
	ErrNotFound = errors.New("Not found")

	// ErrUnavailable means a backing store could not be reached.
	ErrUnavailable = errors.New("Service unavailable")

	// ErrConflict is returned for duplicate email registration.
	ErrConflict = errors.New("Already exist")
)

// ValidationError carries the exact client-facing message for a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError with the given message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Internal wraps an unexpected store or blob failure so the cause stays
// in the logs while callers see a stable category.
func Internal(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
