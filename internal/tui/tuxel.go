package tui

import (
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/samdwyer/tui48/internal/colors"
	"github.com/samdwyer/tui48/internal/geometry"
)

// queues are the two channels that decouple tuxel writers from the canvas lock.
// Sends never block.
type queues struct {
	changed  chan geometry.Idx
	released chan *Tuxel

	// overflow is set when a changed notification was dropped; the next drain
	// returns every stack instead.
	overflow atomic.Bool

	// spill holds released tuxels that did not fit in the released channel.
	spillMu sync.Mutex
	spill   []*Tuxel

	log logr.Logger
}

func newQueues(changedCap, releasedCap int, log logr.Logger) *queues {
	return &queues{
		changed:  make(chan geometry.Idx, changedCap),
		released: make(chan *Tuxel, releasedCap),
		log:      log,
	}
}

func (q *queues) notifyChanged(idx geometry.Idx) {
	select {
	case q.changed <- idx:
	default:
		if q.overflow.CompareAndSwap(false, true) {
			q.log.Error(ErrQueueFull, "changed queue overflow, next drain is a full redraw",
				"capacity", cap(q.changed), "idx", idx.String())
		}
	}
}

func (q *queues) notifyReleased(t *Tuxel) {
	select {
	case q.released <- t:
	default:
		q.log.Error(ErrQueueFull, "released queue overflow, spilling", "capacity", cap(q.released))
		q.spillMu.Lock()
		q.spill = append(q.spill, t)
		q.spillMu.Unlock()
	}
}

func (q *queues) takeSpill() []*Tuxel {
	q.spillMu.Lock()
	defer q.spillMu.Unlock()
	s := q.spill
	q.spill = nil
	return s
}

// Tuxel is the drawable state of one terminal cell. Content and colors may be
// written without holding the canvas lock; only the canvas moves a tuxel.
type Tuxel struct {
	mu        sync.Mutex
	content   rune
	combining []rune
	active    bool
	released  bool
	fg, bg    *colors.Rgb
	idx       geometry.Idx

	modifiers *modifierSet
	queues    *queues
}

func newTuxel(idx geometry.Idx, q *queues, mods *modifierSet) *Tuxel {
	return &Tuxel{
		content:   '-',
		idx:       idx,
		modifiers: mods,
		queues:    q,
	}
}

// SetContent marks the tuxel active and records c as its content. Writes to a
// released tuxel are ignored.
func (t *Tuxel) SetContent(c rune) {
	t.setGrapheme(c, nil)
}

func (t *Tuxel) setGrapheme(c rune, combining []rune) {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return
	}
	t.active = true
	t.content = c
	t.combining = combining
	idx := t.idx
	t.mu.Unlock()

	t.queues.notifyChanged(idx)
}

// SetColors sets the tuxel's own colors. Nil leaves the terminal default.
func (t *Tuxel) SetColors(fg, bg *colors.Rgb) {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return
	}
	t.fg, t.bg = fg, bg
	idx := t.idx
	t.mu.Unlock()

	t.queues.notifyChanged(idx)
}

// Content returns the tuxel's main rune.
func (t *Tuxel) Content() rune {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.content
}

// Grapheme returns the main rune and any combining runes.
func (t *Tuxel) Grapheme() (rune, []rune) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.content, t.combining
}

// Active returns true once content has been set.
func (t *Tuxel) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Idx returns the tuxel's current canvas coordinate.
func (t *Tuxel) Idx() geometry.Idx {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.idx
}

// Colors returns the tuxel's colors with the owning buffer's modifiers applied.
func (t *Tuxel) Colors() (*colors.Rgb, *colors.Rgb) {
	t.mu.Lock()
	fg, bg := t.fg, t.bg
	mods := t.modifiers
	t.mu.Unlock()

	if mods == nil {
		return fg, bg
	}
	return mods.apply(fg, bg)
}

// ownColors returns the colors set on the tuxel, without modifiers.
func (t *Tuxel) ownColors() (*colors.Rgb, *colors.Rgb) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fg, t.bg
}

// setIdx is called by the canvas, under its lock, when the tuxel is swapped.
func (t *Tuxel) setIdx(idx geometry.Idx) {
	t.mu.Lock()
	t.idx = idx
	t.mu.Unlock()
}

// resetLocked returns the tuxel to its inactive state. t.mu must be held.
func (t *Tuxel) resetLocked() {
	t.active = false
	t.content = ' '
	t.combining = nil
	t.fg, t.bg = nil, nil
}

// release clears the tuxel and hands it to the canvas reclaim queue. Only the
// first call has any effect.
func (t *Tuxel) release() {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return
	}
	t.released = true
	t.resetLocked()
	idx := t.idx
	t.mu.Unlock()

	t.queues.notifyChanged(idx)
	t.queues.notifyReleased(t)
}
