package board

import (
	"errors"
	"fmt"
)

// Error classes shared by the board packages. Package-level errors wrap one
// of these so callers can branch with errors.Is.
var (
	// ErrStaleReference marks an operation naming an item that is no longer
	// on the board (or no longer eligible, such as an exiting item).
	ErrStaleReference = errors.New("stale reference")
	// ErrInvalidInput marks input rejected before touching the board.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariantViolation marks a programming error that would corrupt the
	// sequence. It is raised with panic, never returned.
	ErrInvariantViolation = errors.New("invariant violation")
)

// InvariantError is the panic value used when a sequence invariant is broken.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("board: %s: %s", ErrInvariantViolation, e.Reason)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

// Invariant panics with an *InvariantError built from the format string.
func Invariant(format string, args ...any) {
	panic(&InvariantError{Reason: fmt.Sprintf(format, args...)})
}
