// Package geometry provides coordinate and rectangle arithmetic for the canvas.
package geometry

import (
	"errors"
	"fmt"
)

// ErrNegativeOrigin is returned when a translation would move a rectangle's
// origin below zero on either axis.
var ErrNegativeOrigin = errors.New("rectangle origin would be negative")

// Idx is a canvas coordinate. X and Y select a stack, Z selects the depth within it.
type Idx struct {
	X, Y, Z int
}

// String returns a compact representation of the coordinate.
func (i Idx) String() string {
	return fmt.Sprintf("idx(%d,%d,%d)", i.X, i.Y, i.Z)
}

// Bounds2D is a width and height pair.
type Bounds2D struct {
	Width, Height int
}

// Area returns Width*Height.
func (b Bounds2D) Area() int {
	return b.Width * b.Height
}

// Rectangle is an axis-aligned region fixed at one depth.
type Rectangle struct {
	Origin Idx
	Size   Bounds2D
}

// NewRectangle builds a rectangle from its origin and size.
func NewRectangle(x, y, z, width, height int) Rectangle {
	return Rectangle{
		Origin: Idx{X: x, Y: y, Z: z},
		Size:   Bounds2D{Width: width, Height: height},
	}
}

// String returns a compact representation of the rectangle.
func (r Rectangle) String() string {
	return fmt.Sprintf("rect(%d,%d,%d %dx%d)", r.Origin.X, r.Origin.Y, r.Origin.Z, r.Size.Width, r.Size.Height)
}

// X returns the origin's x coordinate.
func (r Rectangle) X() int { return r.Origin.X }

// Y returns the origin's y coordinate.
func (r Rectangle) Y() int { return r.Origin.Y }

// Z returns the rectangle's depth.
func (r Rectangle) Z() int { return r.Origin.Z }

// Width returns the rectangle's width.
func (r Rectangle) Width() int { return r.Size.Width }

// Height returns the rectangle's height.
func (r Rectangle) Height() int { return r.Size.Height }

// Empty returns true if the rectangle covers no cells.
func (r Rectangle) Empty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Extents returns the exclusive x and y end coordinates.
func (r Rectangle) Extents() (int, int) {
	return r.Origin.X + r.Size.Width, r.Origin.Y + r.Size.Height
}

// WithZ returns a copy of the rectangle moved to depth z.
func (r Rectangle) WithZ(z int) Rectangle {
	r.Origin.Z = z
	return r
}

// Indices returns every coordinate in the rectangle in row-major order.
func (r Rectangle) Indices() []Idx {
	if r.Empty() {
		return nil
	}
	idxs := make([]Idx, 0, r.Size.Area())
	for y := r.Origin.Y; y < r.Origin.Y+r.Size.Height; y++ {
		for x := r.Origin.X; x < r.Origin.X+r.Size.Width; x++ {
			idxs = append(idxs, Idx{X: x, Y: y, Z: r.Origin.Z})
		}
	}
	return idxs
}

// Contains returns true if idx lies inside the rectangle at the same depth.
func (r Rectangle) Contains(idx Idx) bool {
	return idx.Z == r.Origin.Z &&
		idx.X >= r.Origin.X && idx.X < r.Origin.X+r.Size.Width &&
		idx.Y >= r.Origin.Y && idx.Y < r.Origin.Y+r.Size.Height
}

// Expand grows the rectangle by dx columns and dy rows on every side. The
// origin saturates at zero.
func (r Rectangle) Expand(dx, dy int) Rectangle {
	x := max(r.Origin.X-dx, 0)
	y := max(r.Origin.Y-dy, 0)
	endX, endY := r.Extents()
	return NewRectangle(x, y, r.Origin.Z, endX+dx-x, endY+dy-y)
}

// Shrink removes dx columns and dy rows from every side. A rectangle that is
// too small collapses to zero size at its center.
func (r Rectangle) Shrink(dx, dy int) Rectangle {
	w := r.Size.Width - 2*dx
	h := r.Size.Height - 2*dy
	x, y := r.Origin.X+dx, r.Origin.Y+dy
	if w < 0 {
		x, w = r.Origin.X+r.Size.Width/2, 0
	}
	if h < 0 {
		y, h = r.Origin.Y+r.Size.Height/2, 0
	}
	return NewRectangle(x, y, r.Origin.Z, w, h)
}

// Translate moves the rectangle n cells in the given direction.
func (r Rectangle) Translate(n int, dir Direction) (Rectangle, error) {
	dx, dy := dir.Delta()
	x := r.Origin.X + dx*n
	y := r.Origin.Y + dy*n
	if x < 0 || y < 0 {
		return r, fmt.Errorf("translate %v %s by %d: %w", r, dir, n, ErrNegativeOrigin)
	}
	r.Origin.X, r.Origin.Y = x, y
	return r, nil
}

// Union returns the bounding rectangle of r and other, at r's depth.
func (r Rectangle) Union(other Rectangle) Rectangle {
	if r.Empty() {
		return other.WithZ(r.Origin.Z)
	}
	if other.Empty() {
		return r
	}
	x := min(r.Origin.X, other.Origin.X)
	y := min(r.Origin.Y, other.Origin.Y)
	rx, ry := r.Extents()
	ox, oy := other.Extents()
	return NewRectangle(x, y, r.Origin.Z, max(rx, ox)-x, max(ry, oy)-y)
}

// RelativeIdx resolves a position to buffer-local x and y coordinates.
func (r Rectangle) RelativeIdx(pos Position) (int, int) {
	switch pos.kind {
	case posTopRight:
		return r.Size.Width - 1, 0
	case posBottomLeft:
		return 0, r.Size.Height - 1
	case posBottomRight:
		return r.Size.Width - 1, r.Size.Height - 1
	case posCoordinates:
		return pos.x, pos.y
	default:
		return 0, 0
	}
}

type positionKind int

const (
	posTopLeft positionKind = iota
	posTopRight
	posBottomLeft
	posBottomRight
	posCoordinates
)

// Position names a cell relative to a rectangle.
type Position struct {
	kind positionKind
	x, y int
}

var (
	// TopLeft is the rectangle's first cell.
	TopLeft = Position{kind: posTopLeft}
	// TopRight is the last cell of the first row.
	TopRight = Position{kind: posTopRight}
	// BottomLeft is the first cell of the last row.
	BottomLeft = Position{kind: posBottomLeft}
	// BottomRight is the rectangle's last cell.
	BottomRight = Position{kind: posBottomRight}
)

// At returns a position at explicit buffer-local coordinates.
func At(x, y int) Position {
	return Position{kind: posCoordinates, x: x, y: y}
}
