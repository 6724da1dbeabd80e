package tui

import (
	"fmt"

	"github.com/samdwyer/tui48/internal/colors"
)

// Cell is one depth slot of a Stack. A Cell is either empty or occupied by
// exactly one Tuxel.
type Cell struct {
	tuxel *Tuxel
}

// Empty returns true if no Tuxel occupies the cell.
func (c Cell) Empty() bool {
	return c.tuxel == nil
}

// Stack is the fixed-depth column of cells at one (x, y) position. Higher z
// occludes lower z.
type Stack struct {
	x, y  int
	cells []Cell
}

func newStack(x, y, depth int) Stack {
	return Stack{x: x, y: y, cells: make([]Cell, depth)}
}

// acquire moves the cell at depth z out of the stack, leaving it empty.
func (s *Stack) acquire(z int) (Cell, error) {
	if z < 0 || z >= len(s.cells) {
		return Cell{}, fmt.Errorf("acquire z=%d at (%d,%d): %w", z, s.x, s.y, ErrOutOfBounds)
	}
	c := s.cells[z]
	s.cells[z] = Cell{}
	return c, nil
}

// replace installs c at depth z and returns the previous cell.
func (s *Stack) replace(z int, c Cell) Cell {
	prev := s.cells[z]
	s.cells[z] = c
	return prev
}

// snapshot copies the stack so it can be inspected without the canvas lock.
func (s *Stack) snapshot() Stack {
	cells := make([]Cell, len(s.cells))
	copy(cells, s.cells)
	return Stack{x: s.x, y: s.y, cells: cells}
}

// Top returns the highest depth holding an active Tuxel.
func (s Stack) Top() (int, bool) {
	for z := len(s.cells) - 1; z >= 0; z-- {
		if t := s.cells[z].tuxel; t != nil && t.Active() {
			return z, true
		}
	}
	return 0, false
}

// Coordinates returns the stack's canvas position.
func (s Stack) Coordinates() (int, int) {
	return s.x, s.y
}

// Depth returns the number of layers in the stack.
func (s Stack) Depth() int {
	return len(s.cells)
}

// Content returns the visible character and any combining runes. A stack with
// no active layer shows a space.
func (s Stack) Content() (rune, []rune) {
	z, ok := s.Top()
	if !ok {
		return ' ', nil
	}
	return s.cells[z].tuxel.Grapheme()
}

// Colors returns the visible foreground and background after the owning
// buffer's modifiers are applied. Nil means the terminal default.
func (s Stack) Colors() (*colors.Rgb, *colors.Rgb) {
	z, ok := s.Top()
	if !ok {
		return nil, nil
	}
	return s.cells[z].tuxel.Colors()
}
