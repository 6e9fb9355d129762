package mines

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPosition means the caller passed coordinates outside the grid.
	ErrInvalidPosition = errors.New("invalid cell position")

	// ErrIllegalOperation is returned for reveals and flags on a finished
	// game. The board is left untouched.
	ErrIllegalOperation = errors.New("game is over")
)

func invalidPosition(row, col int) error {
	return fmt.Errorf("%w: %d:%d", ErrInvalidPosition, row, col)
}
