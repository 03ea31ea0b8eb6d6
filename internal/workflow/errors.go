package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrFinalGate is returned when advancing a record already at gate 7.
	ErrFinalGate = errors.New("already at the final gate")

	// ErrFirstGate is returned when moving a gate-1 record back.
	ErrFirstGate = errors.New("already at the first gate")

	// ErrNotFinalGate is returned when closing a record before gate 7.
	ErrNotFinalGate = errors.New("closeout is only available at the final gate")

	// ErrGateMismatch is returned when a command targets a gate other than
	// the record's current one.
	ErrGateMismatch = errors.New("command targets a different gate")
)

// ValidationError names the first unmet advance requirement of a gate.
type ValidationError struct {
	Gate    int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gate %d: %s", e.Gate, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func required(gate int, field, msg string) *ValidationError {
	return &ValidationError{Gate: gate, Field: field, Message: msg}
}
