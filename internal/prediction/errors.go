package prediction

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid cycle input")
	ErrDegenerateCycle = errors.New("cycle does not advance")
)

// InputError reports the parameter that refused projection.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalidField(field string, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
