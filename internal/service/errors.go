package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks a business precondition failure. Every validation
// sentinel wraps it, so transport can map the whole family to one status
// code with errors.Is.
var ErrValidation = errors.New("validation failed")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
