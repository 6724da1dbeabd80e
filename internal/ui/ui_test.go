package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tui48/internal/colors"
	"github.com/samdwyer/tui48/internal/geometry"
	"github.com/samdwyer/tui48/internal/tui"
)

func newTestScreen(t *testing.T, w, h int) *Screen {
	t.Helper()
	s, err := NewSimulationScreen(w, h)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestTranslateEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want Event
	}{
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), Event{Kind: EventShift, Direction: geometry.Left}},
		{"arrow right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), Event{Kind: EventShift, Direction: geometry.Right}},
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), Event{Kind: EventShift, Direction: geometry.Up}},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), Event{Kind: EventShift, Direction: geometry.Down}},
		{"h", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), Event{Kind: EventShift, Direction: geometry.Left}},
		{"j", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), Event{Kind: EventShift, Direction: geometry.Down}},
		{"k", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), Event{Kind: EventShift, Direction: geometry.Up}},
		{"l", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), Event{Kind: EventShift, Direction: geometry.Right}},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), Event{Kind: EventQuit}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Event{Kind: EventQuit}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Event{Kind: EventQuit}},
		{"ctrl-l", tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), Event{Kind: EventRedraw}},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), Event{Kind: EventNone}},
		{"resize", tcell.NewEventResize(80, 24), Event{Kind: EventResize, Width: 80, Height: 24}},
	}

	for _, tt := range tests {
		if got := TranslateEvent(tt.ev); got != tt.want {
			t.Errorf("%s: TranslateEvent() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{EventNone, "none"},
		{EventShift, "shift"},
		{EventQuit, "quit"},
		{EventResize, "resize"},
		{EventRedraw, "redraw"},
		{EventKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("EventKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNextEvent(t *testing.T) {
	s := newTestScreen(t, 10, 5)
	if err := s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}

	// The simulation screen reports its initial size first.
	for i := 0; i < 3; i++ {
		ev := s.NextEvent()
		if ev.Kind == EventResize {
			continue
		}
		if ev.Kind != EventShift || ev.Direction != geometry.Down {
			t.Errorf("NextEvent() = %+v, want shift down", ev)
		}
		return
	}
	t.Error("NextEvent() never returned the posted key")
}

func TestRenderChangedCells(t *testing.T) {
	s := newTestScreen(t, 6, 3)
	r := NewRenderer(s)
	c := tui.NewCanvas(6, 3)

	db, err := c.Allocate(geometry.NewRectangle(1, 1, 0, 3, 1))
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	defer db.Release()

	fg := colors.NewRgb(255, 255, 255)
	bg := colors.NewRgb(0, 0, 128)
	for x, ch := range "abc" {
		if err := db.SetCell(x, 0, []rune{ch}, &fg, &bg); err != nil {
			t.Fatalf("SetCell() error = %v", err)
		}
	}

	if got := r.Render(c); got != 3 {
		t.Errorf("Render() drew %d cells, want 3", got)
	}
	for x, want := range "abc" {
		ch, _, style := s.Content(1+x, 1)
		if ch != want {
			t.Errorf("screen (%d,1) = %q, want %q", 1+x, ch, want)
		}
		gotFg, gotBg, _ := style.Decompose()
		if gotFg != tcell.NewRGBColor(255, 255, 255) || gotBg != tcell.NewRGBColor(0, 0, 128) {
			t.Errorf("screen (%d,1) colors = (%v, %v)", 1+x, gotFg, gotBg)
		}
	}

	if got := r.Render(c); got != 0 {
		t.Errorf("second Render() drew %d cells, want 0", got)
	}

	// Rewriting identical content reaches the renderer but is not redrawn.
	if err := db.SetCell(0, 0, []rune{'a'}, nil, nil); err != nil {
		t.Fatalf("SetCell() error = %v", err)
	}
	if got := r.Render(c); got != 0 {
		t.Errorf("Render() after identical write drew %d cells, want 0", got)
	}

	if err := db.SetCell(1, 0, []rune{'z'}, nil, nil); err != nil {
		t.Fatalf("SetCell() error = %v", err)
	}
	if got := r.Render(c); got != 1 {
		t.Errorf("Render() after one change drew %d cells, want 1", got)
	}
}

func TestRenderTranslateClearsVacatedCells(t *testing.T) {
	s := newTestScreen(t, 4, 4)
	r := NewRenderer(s)
	c := tui.NewCanvas(4, 4)

	db, err := c.Allocate(geometry.NewRectangle(0, 0, 0, 1, 1))
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	defer db.Release()
	if err := db.Fill('#'); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	r.Render(c)

	if err := db.Translate(geometry.Right); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	r.Render(c)

	if ch, _, _ := s.Content(0, 0); ch != ' ' {
		t.Errorf("vacated cell = %q, want ' '", ch)
	}
	if ch, _, _ := s.Content(1, 0); ch != '#' {
		t.Errorf("destination cell = %q, want '#'", ch)
	}
}

func TestClearRedrawsEverything(t *testing.T) {
	s := newTestScreen(t, 3, 2)
	r := NewRenderer(s)
	c := tui.NewCanvas(3, 2)

	if got := r.Clear(c); got != 6 {
		t.Errorf("Clear() drew %d cells, want 6", got)
	}
	if got := r.Clear(c); got != 6 {
		t.Errorf("second Clear() drew %d cells, want 6", got)
	}
}

func TestCellStyleDefaults(t *testing.T) {
	if got := cellStyle(nil, nil); got != tcell.StyleDefault {
		t.Errorf("cellStyle(nil, nil) = %v, want default", got)
	}
}
