// Package errs defines the error taxonomy of the lifecycle engine.
//
// Every error kind is a sentinel plus a struct carrying details:
//
//	ErrObjectNotFound        ObjectNotFoundError        missing or other tenant's record
//	ErrValueIsInvalid        ValueIsInvalidError        malformed input
//	ErrValueIsRequired       ValueIsRequiredError       missing input or failed precondition
//	ErrValueIsOutOfRange     ValueIsOutOfRangeError     numeric bounds
//	ErrTransitionNotAllowed  TransitionNotAllowedError  not an edge of the status graph
//	ErrInvariantViolation    InvariantViolationError    lineage lost its single active version
//
// Structs unwrap to their sentinel, so callers classify with errors.Is and read
// details with errors.As. Constructors come in pairs, with and without a cause.
package errs
