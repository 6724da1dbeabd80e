package ui

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tui48/internal/colors"
	"github.com/samdwyer/tui48/internal/tui"
)

// Renderer draws canvas stacks to the screen. It remembers a digest of what it
// last drew in every cell and skips cells whose appearance did not change.
type Renderer struct {
	screen *Screen
	width  int
	drawn  []uint64
	buf    []byte
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the stacks changed since the previous call and returns how many
// terminal cells were written.
func (r *Renderer) Render(c *tui.Canvas) int {
	r.fit(c)
	n := r.draw(c.Changed())
	if n > 0 {
		r.screen.Show()
	}
	return n
}

// Clear forgets everything drawn and redraws the whole canvas.
func (r *Renderer) Clear(c *tui.Canvas) int {
	r.drawn = nil
	r.fit(c)
	r.screen.Clear()
	n := r.draw(c.Stacks())
	r.screen.Sync()
	return n
}

func (r *Renderer) fit(c *tui.Canvas) {
	w, h := c.Dimensions()
	if r.width == w && len(r.drawn) == w*h {
		return
	}
	r.width = w
	r.drawn = make([]uint64, w*h)
}

func (r *Renderer) draw(stacks []tui.Stack) int {
	n := 0
	for _, s := range stacks {
		x, y := s.Coordinates()
		ch, combining := s.Content()
		fg, bg := s.Colors()

		k := y*r.width + x
		if k < 0 || k >= len(r.drawn) {
			continue
		}
		sum := r.digest(ch, combining, fg, bg)
		if r.drawn[k] == sum {
			continue
		}
		r.drawn[k] = sum

		r.screen.SetContent(x, y, ch, combining, cellStyle(fg, bg))
		n++
	}
	return n
}

// digest hashes a cell's visible state. Zero is reserved for "never drawn".
func (r *Renderer) digest(ch rune, combining []rune, fg, bg *colors.Rgb) uint64 {
	b := r.buf[:0]
	b = binary.LittleEndian.AppendUint32(b, uint32(ch))
	for _, c := range combining {
		b = binary.LittleEndian.AppendUint32(b, uint32(c))
	}
	b = appendColor(b, fg)
	b = appendColor(b, bg)
	r.buf = b

	sum := xxhash.Sum64(b)
	if sum == 0 {
		sum = 1
	}
	return sum
}

func appendColor(b []byte, c *colors.Rgb) []byte {
	if c == nil {
		return append(b, 0)
	}
	red, green, blue := c.RGB255()
	return append(b, 1, red, green, blue)
}

// cellStyle converts canvas colors to a tcell style. Nil keeps the terminal
// default.
func cellStyle(fg, bg *colors.Rgb) tcell.Style {
	style := tcell.StyleDefault
	if fg != nil {
		style = style.Foreground(tcellColor(*fg))
	}
	if bg != nil {
		style = style.Background(tcellColor(*bg))
	}
	return style
}

func tcellColor(c colors.Rgb) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
