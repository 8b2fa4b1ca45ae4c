package errs

import (
	"errors"
	"fmt"
)

var (
	ErrTransitionNotAllowed = errors.New("transition not allowed")
	ErrInvariantViolation   = errors.New("invariant violation")
)

// TransitionNotAllowedError is returned when the requested status change is not an
// edge of the category's status graph. The document is left untouched.
type TransitionNotAllowedError struct {
	Category string
	From     string
	To       string
}

func NewTransitionNotAllowedError(category, from, to string) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{
		Category: category,
		From:     from,
		To:       to,
	}
}

func (e *TransitionNotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %q to %q", ErrTransitionNotAllowed, e.Category, e.From, e.To)
}

func (e *TransitionNotAllowedError) Unwrap() error {
	return ErrTransitionNotAllowed
}

// InvariantViolationError signals that a lineage no longer has exactly one active
// version. It is never caused by caller input; the surrounding transaction must be
// rolled back.
type InvariantViolationError struct {
	LineageRootID string
	Detail        string
	Cause         error
}

func NewInvariantViolationError(lineageRootID, detail string) *InvariantViolationError {
	return &InvariantViolationError{
		LineageRootID: lineageRootID,
		Detail:        detail,
	}
}

func NewInvariantViolationErrorWithCause(lineageRootID, detail string, cause error) *InvariantViolationError {
	return &InvariantViolationError{
		LineageRootID: lineageRootID,
		Detail:        detail,
		Cause:         cause,
	}
}

func (e *InvariantViolationError) Error() string {
	msg := fmt.Sprintf("%s: lineage %s: %s", ErrInvariantViolation, e.LineageRootID, e.Detail)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvariantViolationError) Unwrap() error {
	return ErrInvariantViolation
}

// IsValidationFailed reports whether err stems from rejected caller input.
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
