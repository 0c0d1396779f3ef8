// Package gameerr holds the caller-error taxonomy shared by the game core.
//
// Every error here is detected synchronously at the point of the call and is
// never retried: the caller must fix its input and call again.
package gameerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every *InvalidArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvariantViolation is matched by every *InvariantViolationError.
	ErrInvariantViolation = errors.New("invariant violation")
)

// InvalidArgumentError reports malformed input such as a negative power
// rating, out-of-range hours, or an oversized session request.
type InvalidArgumentError struct {
	Op     string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument: %s", e.Op, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// InvariantViolationError reports an internal consistency failure caused by
// bad caller data, e.g. duplicate answer text making the correct answer
// ambiguous after a shuffle.
type InvariantViolationError struct {
	Op     string
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s: invariant violation: %s", e.Op, e.Reason)
}

func (e *InvariantViolationError) Unwrap() error { return ErrInvariantViolation }

// InvalidArgument builds an *InvalidArgumentError with a formatted reason.
func InvalidArgument(op, format string, args ...any) error {
	return &InvalidArgumentError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// InvariantViolation builds an *InvariantViolationError with a formatted reason.
func InvariantViolation(op, format string, args ...any) error {
	return &InvariantViolationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
