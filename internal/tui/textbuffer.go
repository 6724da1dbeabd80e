package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/samdwyer/tui48/internal/colors"
)

// HAlign is the horizontal placement of each line.
type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

// VAlign is the vertical placement of the block of lines.
type VAlign int

const (
	AlignMiddle VAlign = iota
	AlignTop
	AlignBottom
)

// FormatOptions controls how Flush lays text out. The zero value centers text
// in both directions.
type FormatOptions struct {
	HAlign HAlign
	VAlign VAlign
}

type textChunk struct {
	text   string
	fg, bg *colors.Rgb
}

// TextBuffer is a DrawBuffer with line-oriented writes. Text is queued by
// Write and laid out by Flush.
type TextBuffer struct {
	*DrawBuffer
	chunks []textChunk
	format FormatOptions
}

// NewTextBuffer wraps db. The TextBuffer takes over ownership of db.
func NewTextBuffer(db *DrawBuffer) *TextBuffer {
	return &TextBuffer{DrawBuffer: db}
}

// Format sets the layout used by the next Flush.
func (tb *TextBuffer) Format(opts FormatOptions) {
	tb.format = opts
}

// Write queues text with optional colors. Each call starts a new line.
func (tb *TextBuffer) Write(text string, fg, bg *colors.Rgb) {
	tb.chunks = append(tb.chunks, textChunk{text: text, fg: fg, bg: bg})
}

// Reset drops all queued text.
func (tb *TextBuffer) Reset() {
	tb.chunks = nil
}

// wrapChunks splits every chunk into lines no wider than width. Words longer than
// width are truncated.
func wrapChunks(chunks []textChunk, width int) []textChunk {
	var lines []textChunk
	for _, c := range chunks {
		wrapped := wordwrap.String(c.text, width)
		for _, line := range strings.Split(wrapped, "\n") {
			line = strings.TrimRight(line, " ")
			if runewidth.StringWidth(line) > width {
				line = runewidth.Truncate(line, width, "")
			}
			lines = append(lines, textChunk{text: line, fg: c.fg, bg: c.bg})
		}
	}
	return lines
}

// Flush lays out the queued text inside the buffer, or inside its border if
// one was drawn. Lines that do not fit vertically are dropped according to the
// vertical alignment: from the bottom for Top, evenly for Middle and from the
// top for Bottom. Queued text is kept so a later Flush redraws it.
func (tb *TextBuffer) Flush() error {
	d := tb.DrawBuffer
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return ErrReleased
	}

	x0, y0, width, height := d.innerLocked()
	if width == 0 || height == 0 {
		return nil
	}

	lines := wrapChunks(tb.chunks, width)

	row, skip := 0, 0
	switch n := len(lines); {
	case tb.format.VAlign == AlignTop || n == height:
	case tb.format.VAlign == AlignMiddle && n < height:
		row = (height - n) / 2
	case tb.format.VAlign == AlignMiddle:
		skip = (n - height) / 2
	case n < height:
		row = height - n
	default:
		skip = n - height
	}

	for _, line := range lines[skip:] {
		if row >= height {
			break
		}

		clusters := graphemes(line.text)
		col := 0
		switch diff := width - lineWidth(clusters); tb.format.HAlign {
		case AlignCenter:
			col = diff / 2
		case AlignRight:
			col = diff
		}
		col = max(col, 0)

		for _, cl := range clusters {
			w := clusterWidth(cl)
			if col+w > width {
				break
			}
			if err := d.setCellLocked(x0+col, y0+row, cl, line.fg, line.bg); err != nil {
				return err
			}
			col += w
		}
		row++
	}
	return nil
}
