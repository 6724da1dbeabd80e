package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tui48/internal/geometry"
)

// EventKind is the game-level meaning of a terminal event.
type EventKind int

const (
	EventNone EventKind = iota
	EventShift
	EventQuit
	EventResize
	EventRedraw
)

// String returns a human-readable event kind.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventShift:
		return "shift"
	case EventQuit:
		return "quit"
	case EventResize:
		return "resize"
	case EventRedraw:
		return "redraw"
	default:
		return "unknown"
	}
}

// Event is a decoded terminal event.
type Event struct {
	Kind      EventKind
	Direction geometry.Direction // set for EventShift
	Width     int                // set for EventResize
	Height    int                // set for EventResize
}

var keyDirections = map[tcell.Key]geometry.Direction{
	tcell.KeyLeft:  geometry.Left,
	tcell.KeyRight: geometry.Right,
	tcell.KeyUp:    geometry.Up,
	tcell.KeyDown:  geometry.Down,
}

var runeDirections = map[rune]geometry.Direction{
	'h': geometry.Left,
	'l': geometry.Right,
	'k': geometry.Up,
	'j': geometry.Down,
}

// TranslateEvent maps arrow keys and hjkl to shifts; q, Escape and Ctrl-C to
// quit; Ctrl-L to a full redraw. Everything else is EventNone.
func TranslateEvent(ev tcell.Event) Event {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Kind: EventResize, Width: w, Height: h}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return Event{Kind: EventQuit}
		case tcell.KeyCtrlL:
			return Event{Kind: EventRedraw}
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return Event{Kind: EventQuit}
			}
			if dir, ok := runeDirections[ev.Rune()]; ok {
				return Event{Kind: EventShift, Direction: dir}
			}
		default:
			if dir, ok := keyDirections[ev.Key()]; ok {
				return Event{Kind: EventShift, Direction: dir}
			}
		}
	}
	return Event{Kind: EventNone}
}

// NextEvent blocks for the next terminal event and decodes it.
func (s *Screen) NextEvent() Event {
	ev := s.PollEvent()
	if ev == nil {
		return Event{Kind: EventQuit}
	}
	return TranslateEvent(ev)
}
