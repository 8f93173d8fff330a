// Package apperr defines the error kinds shared by every component.
// Use cases wrap these with fmt.Errorf("...: %w", ErrX) and callers
// branch with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidState      = errors.New("invalid state")
	ErrValidation        = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConnection means the database could not be reached.
	ErrConnection = errors.New("database connection failure")
	// ErrQuery means the database rejected or failed a statement.
	ErrQuery = errors.New("database query failure")
)

// Validation wraps a message as ErrValidation.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }
