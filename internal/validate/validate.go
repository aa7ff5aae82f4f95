// Package validate holds the parameter error shared by the mesh, material and light constructors.
package validate

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter matches every *InvalidParameterError through errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports a rejected construction argument.
type InvalidParameterError struct {
	Kind   string // shape, material or light kind
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid %s %v: %s", e.Kind, e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidParameter.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// Positive fails unless v > 0.
func Positive(kind, field string, v float32) error {
	if v > 0 {
		return nil
	}
	return &InvalidParameterError{Kind: kind, Field: field, Value: v, Reason: "must be greater than zero"}
}

// NonNegative fails when v < 0.
func NonNegative(kind, field string, v float32) error {
	if v >= 0 {
		return nil
	}
	return &InvalidParameterError{Kind: kind, Field: field, Value: v, Reason: "must not be negative"}
}

// Size fails unless got == want. Used for vectors decoded from scene files.
func Size(kind, field string, got, want int) error {
	if got == want {
		return nil
	}
	return &InvalidParameterError{Kind: kind, Field: field, Value: got, Reason: fmt.Sprintf("must have %d components", want)}
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
