package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is the sentinel every ValidationError unwraps to. The
// HTTP layer maps it to 400 and the CLI to a usage failure.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError reports a rejected request field. Message is safe to show
// to clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// IsValidation reports whether err carries a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
