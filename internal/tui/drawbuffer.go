package tui

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/tui48/internal/colors"
	"github.com/samdwyer/tui48/internal/geometry"
)

// Double-line box drawing glyphs used by DrawBorder.
const (
	borderTopLeft     = '╔'
	borderTopRight    = '╗'
	borderBottomLeft  = '╚'
	borderBottomRight = '╝'
	borderHorizontal  = '═'
	borderVertical    = '║'
)

// DrawBuffer is a rectangular allocation of tuxels at one depth. It owns its
// tuxels until Release. Its rectangle is not stored: it is derived from the
// canvas-maintained index of its first tuxel, so moving the buffer never
// needs a second piece of bookkeeping to be kept in sync.
type DrawBuffer struct {
	mu        sync.Mutex
	canvas    *Canvas
	size      geometry.Bounds2D
	border    bool
	buf       [][]*Tuxel
	modifiers *modifierSet
	released  bool
	cleanup   runtime.Cleanup
}

func newDrawBuffer(c *Canvas, size geometry.Bounds2D) *DrawBuffer {
	buf := make([][]*Tuxel, size.Height)
	for y := range buf {
		buf[y] = make([]*Tuxel, size.Width)
	}
	return &DrawBuffer{
		canvas:    c,
		size:      size,
		buf:       buf,
		modifiers: &modifierSet{},
	}
}

// armCleanup releases the tuxels if the buffer becomes unreachable without
// Release being called.
func (d *DrawBuffer) armCleanup() {
	tuxels := make([]*Tuxel, 0, d.size.Area())
	for _, row := range d.buf {
		tuxels = append(tuxels, row...)
	}
	d.cleanup = runtime.AddCleanup(d, releaseAll, tuxels)
}

func releaseAll(tuxels []*Tuxel) {
	for _, t := range tuxels {
		t.release()
	}
}

// Rectangle returns the buffer's current footprint on the canvas.
func (d *DrawBuffer) Rectangle() geometry.Rectangle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rectangleLocked()
}

func (d *DrawBuffer) rectangleLocked() geometry.Rectangle {
	return geometry.Rectangle{Origin: d.buf[0][0].Idx(), Size: d.size}
}

// Bordered returns true once DrawBorder has drawn a border.
func (d *DrawBuffer) Bordered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.border
}

// inner returns the buffer-local region left for content.
func (d *DrawBuffer) innerLocked() (x, y, width, height int) {
	if d.border {
		return 1, 1, max(d.size.Width-2, 0), max(d.size.Height-2, 0)
	}
	return 0, 0, d.size.Width, d.size.Height
}

func (d *DrawBuffer) tuxelLocked(pos geometry.Position) (*Tuxel, error) {
	if d.released {
		return nil, ErrReleased
	}
	x, y := geometry.Rectangle{Size: d.size}.RelativeIdx(pos)
	if y < 0 || y >= len(d.buf) {
		return nil, fmt.Errorf("row %d of %d: %w", y, d.size.Height, ErrOutOfBounds)
	}
	if x < 0 || x >= len(d.buf[y]) {
		return nil, fmt.Errorf("column %d of %d: %w", x, d.size.Width, ErrOutOfBounds)
	}
	return d.buf[y][x], nil
}

// Tuxel returns the tuxel at a buffer-local position for direct writes.
func (d *DrawBuffer) Tuxel(pos geometry.Position) (*Tuxel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tuxelLocked(pos)
}

// SetCell writes a grapheme cluster and optional colors at buffer-local
// coordinates. Nil colors leave the tuxel's colors untouched.
func (d *DrawBuffer) SetCell(x, y int, cluster []rune, fg, bg *colors.Rgb) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setCellLocked(x, y, cluster, fg, bg)
}

func (d *DrawBuffer) setCellLocked(x, y int, cluster []rune, fg, bg *colors.Rgb) error {
	t, err := d.tuxelLocked(geometry.At(x, y))
	if err != nil {
		return err
	}
	if len(cluster) == 0 {
		cluster = []rune{' '}
	}
	t.setGrapheme(cluster[0], cluster[1:])
	if fg != nil || bg != nil {
		curFg, curBg := t.ownColors()
		if fg != nil {
			curFg = fg
		}
		if bg != nil {
			curBg = bg
		}
		t.SetColors(curFg, curBg)
	}
	return nil
}

// Fill sets every cell inside the border, or every cell if there is none.
func (d *DrawBuffer) Fill(c rune) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return ErrReleased
	}

	x0, y0, w, h := d.innerLocked()
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			d.buf[y][x].SetContent(c)
		}
	}
	return nil
}

// DrawBorder writes a double-line box around the buffer's outer ring. Buffers
// with fewer than two rows or columns are left untouched. Once drawn, Fill and
// the Write methods inset by one cell.
func (d *DrawBuffer) DrawBorder() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return ErrReleased
	}
	if d.size.Height < 2 || d.size.Width < 2 {
		return nil
	}

	w, h := d.size.Width, d.size.Height
	d.buf[0][0].SetContent(borderTopLeft)
	d.buf[0][w-1].SetContent(borderTopRight)
	d.buf[h-1][0].SetContent(borderBottomLeft)
	d.buf[h-1][w-1].SetContent(borderBottomRight)

	for x := 1; x < w-1; x++ {
		d.buf[0][x].SetContent(borderHorizontal)
		d.buf[h-1][x].SetContent(borderHorizontal)
	}
	for y := 1; y < h-1; y++ {
		d.buf[y][0].SetContent(borderVertical)
		d.buf[y][w-1].SetContent(borderVertical)
	}

	d.border = true
	return nil
}

// graphemes splits s into grapheme clusters.
func graphemes(s string) [][]rune {
	var out [][]rune
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Runes())
	}
	return out
}

// clusterWidth is the number of columns a grapheme cluster covers. Zero-width
// clusters still take a cell.
func clusterWidth(cl []rune) int {
	return max(runewidth.StringWidth(string(cl)), 1)
}

// lineWidth is the number of columns s covers when written cluster by cluster.
func lineWidth(clusters [][]rune) int {
	n := 0
	for _, cl := range clusters {
		n += clusterWidth(cl)
	}
	return n
}

// writeLineLocked places clusters on the middle row starting at inner column
// offset, clipped to the inner width. A wide cluster covers the columns after
// it, and one that would straddle either edge is dropped.
func (d *DrawBuffer) writeLineLocked(clusters [][]rune, offset int) error {
	if d.released {
		return ErrReleased
	}
	x0, y0, w, h := d.innerLocked()
	if w == 0 || h == 0 {
		return nil
	}
	y := d.size.Height / 2
	if y < y0 {
		y = y0
	}
	col := offset
	for _, cl := range clusters {
		cw := clusterWidth(cl)
		if col+cw > w {
			break
		}
		if col >= 0 {
			if err := d.setCellLocked(x0+col, y, cl, nil, nil); err != nil {
				return err
			}
		}
		col += cw
	}
	return nil
}

// WriteLeft writes a single left-aligned line on the middle row.
func (d *DrawBuffer) WriteLeft(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeLineLocked(graphemes(s), 0)
}

// WriteRight writes a single right-aligned line on the middle row. Text wider
// than the buffer keeps its tail.
func (d *DrawBuffer) WriteRight(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _, w, _ := d.innerLocked()
	clusters := graphemes(s)
	return d.writeLineLocked(clusters, w-lineWidth(clusters))
}

// WriteCenter writes a single centered line on the middle row. Odd leftover
// space goes to the left.
func (d *DrawBuffer) WriteCenter(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _, w, _ := d.innerLocked()
	clusters := graphemes(s)
	offset := 0
	if n := lineWidth(clusters); n < w {
		offset = (w - n + 1) / 2
	}
	return d.writeLineLocked(clusters, offset)
}

// Modify queues a color transform applied to every tuxel at render time.
func (d *DrawBuffer) Modify(m Modifier) {
	d.modifiers.push(m)
	d.touchAll()
}

// ResetModifiers drops every queued transform.
func (d *DrawBuffer) ResetModifiers() {
	d.modifiers.reset()
	d.touchAll()
}

// Modifiers returns the queued transforms in application order.
func (d *DrawBuffer) Modifiers() []Modifier {
	return d.modifiers.list()
}

// touchAll reports every active tuxel as changed so new modifiers get drawn.
func (d *DrawBuffer) touchAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}
	for _, row := range d.buf {
		for _, t := range row {
			if t.Active() {
				d.canvas.queues.notifyChanged(t.Idx())
			}
		}
	}
}

// Translate moves the buffer one cell in dir by swapping its footprint with
// the shifted footprint. The vacated strip ends up empty. A destination
// outside the canvas returns ErrOutOfBounds and nothing moves.
func (d *DrawBuffer) Translate(dir geometry.Direction) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return ErrReleased
	}

	cur := d.rectangleLocked()
	dst, err := cur.Translate(1, dir)
	if err != nil {
		return fmt.Errorf("translate %s: %w: %w", dir, ErrOutOfBounds, err)
	}
	if err := d.canvas.SwapRectangle(cur, dst); err != nil {
		return fmt.Errorf("translate %s: %w", dir, err)
	}
	return nil
}

// SwitchLayer moves the buffer to depth z, keeping its x and y.
func (d *DrawBuffer) SwitchLayer(z int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return ErrReleased
	}

	cur := d.rectangleLocked()
	if cur.Z() == z {
		return nil
	}
	if err := d.canvas.SwapRectangle(cur, cur.WithZ(z)); err != nil {
		return fmt.Errorf("switch layer %d to %d: %w", cur.Z(), z, err)
	}
	return nil
}

// Release clears every tuxel, returns the footprint to the canvas and
// reclaims it. Calling Release more than once is a no-op.
func (d *DrawBuffer) Release() {
	d.mu.Lock()
	if d.released {
		d.mu.Unlock()
		return
	}
	d.released = true
	d.cleanup.Stop()
	for _, row := range d.buf {
		for _, t := range row {
			t.release()
		}
	}
	d.mu.Unlock()

	d.canvas.Reclaim()
}
