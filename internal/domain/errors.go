package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested aggregate was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a create collided with a stored aggregate.
	ErrAlreadyExists = errors.New("already exists")
	// ErrConcurrencyConflict indicates a version-checked update lost the race
	// against a concurrent writer. Callers must re-load and re-decide.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	// ErrCorruptRecord indicates a stored record failed to reconstruct into
	// the aggregate. Fatal, not retryable.
	ErrCorruptRecord = errors.New("corrupt record")
)

// ValidationError reports malformed input. Surfaced immediately, never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvariantError reports a domain rule breach: the input was well-formed but
// the aggregate's state forbids the operation.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return e.Msg }

// NewInvariantError builds an InvariantError with a formatted message.
func NewInvariantError(format string, args ...any) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// IsInvariant reports whether err is an InvariantError.
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
