package errors

import "fmt"

// ValidationError describes malformed input: which field was checked, the
// shape that was expected, and what was actually observed.
type ValidationError struct {
	Field    string // Input being validated, e.g. "positions" or "colors[2]"
	Expected string // Expected shape or value class
	Actual   string // Observed value or type
}

// Invalid creates a ValidationError. Actual is rendered with %v so callers can
// pass values, types or counts directly.
func Invalid(field, expected string, actual any) *ValidationError {
	return &ValidationError{
		Field:    field,
		Expected: expected,
		Actual:   fmt.Sprintf("%v", actual),
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeValidation, e.message())
}

// Code returns the error code for this error type.
func (e *ValidationError) Code() Code {
	return ErrCodeValidation
}

func (e *ValidationError) message() string {
	return fmt.Sprintf("invalid %s: expected %s, got %s", e.Field, e.Expected, e.Actual)
}
