package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateUser is returned when registering an already known Telegram ID
	ErrDuplicateUser = errors.New("user already registered")

	// ErrNotFound is returned when a referenced user or ad does not exist
	ErrNotFound = errors.New("not found")
)

// ValidationError marks user input out of bounds. Flows recover locally:
// re-prompt the same step, no state change.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Validationf creates a ValidationError with a formatted message
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
