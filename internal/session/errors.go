package session

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MsgFieldsRequired = "All fields are required"
	MsgBackendFailed  = "Something went wrong. Please check your input."
	MsgOpenCircuit    = "Γ = 1 is an open circuit; the impedance is infinite"
)

// ErrInputValidation is returned when a form field is missing or cannot be
// parsed. No request is sent.
var ErrInputValidation = errors.New("session: input validation failed")

// ValidationError names the offending field.
type ValidationError struct {
	Field Field
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInputValidation, e.Err}
}
