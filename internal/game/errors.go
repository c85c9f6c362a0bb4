package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalPlacement is returned when a card cannot go into the requested row.
	ErrIllegalPlacement = errors.New("illegal placement")

	// ErrIllegalMove is returned when a proposed play breaks hand membership,
	// row affinity or turn ownership. The state is left untouched.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvariant reports corrupted board or life state. The match is aborted.
	ErrInvariant = errors.New("engine invariant violation")
)

// LookupError is returned by a catalog for an unknown card id.
type LookupError struct {
	ID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("card not found in catalog: %q", e.ID)
}

func illegalMove(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalMove, fmt.Sprintf(format, args...))
}

func invariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
