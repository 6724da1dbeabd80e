package tui

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when an index or rectangle falls outside the canvas.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrCellAlreadyOwned is returned when allocating a cell that is not empty.
	ErrCellAlreadyOwned = errors.New("cell already owned")
	// ErrDimensionMismatch is returned when swapping rectangles of different sizes.
	ErrDimensionMismatch = errors.New("rectangle dimensions do not match")
	// ErrEmptyRectangle is returned when allocating a rectangle with no cells.
	ErrEmptyRectangle = errors.New("empty rectangle")
	// ErrReleased is returned by operations on a released draw buffer.
	ErrReleased = errors.New("draw buffer released")
	// ErrQueueFull reports a notification queue that was sized too small.
	ErrQueueFull = errors.New("notification queue full")
)

// TerminalTooSmallError reports a canvas that cannot fit a layout.
type TerminalTooSmallError struct {
	Width, Height       int
	MinWidth, MinHeight int
}

func (e *TerminalTooSmallError) Error() string {
	return fmt.Sprintf("terminal too small: %d x %d, required minimum size %d x %d",
		e.Width, e.Height, e.MinWidth, e.MinHeight)
}
