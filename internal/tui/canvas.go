// Package tui implements the tuxel compositing engine: a grid of depth-layered
// cells with exclusive ownership, z-order occlusion, change tracking and
// in-place movement of rectangular regions.
package tui

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/tui48/internal/geometry"
	"github.com/samdwyer/tui48/internal/telemetry"
)

const (
	// DefaultDepth is the number of layers in each stack.
	DefaultDepth = 8

	// defaultChangedFactor bounds how many changed notifications each stack
	// may produce between two drains before the queue overflows.
	defaultChangedFactor = 8
)

// Option configures a Canvas.
type Option func(*canvasOptions)

type canvasOptions struct {
	depth         int
	changedFactor int
	log           *logr.Logger
	meter         metric.Meter
}

// WithDepth sets the number of layers per stack.
func WithDepth(depth int) Option {
	return func(o *canvasOptions) {
		if depth > 0 {
			o.depth = depth
		}
	}
}

// WithChangedFactor sets how many changed notifications per stack per frame
// the changed queue can hold.
func WithChangedFactor(n int) Option {
	return func(o *canvasOptions) {
		if n > 0 {
			o.changedFactor = n
		}
	}
}

// WithLogger sets the canvas logger instead of the package logger.
func WithLogger(l logr.Logger) Option {
	return func(o *canvasOptions) {
		o.log = &l
	}
}

// WithMeter records canvas counters on m instead of the global meter
// provider.
func WithMeter(m metric.Meter) Option {
	return func(o *canvasOptions) {
		o.meter = m
	}
}

// Canvas is a width x height grid of Stacks. It is the only authority that
// turns cells empty or occupied; all structural changes happen under mu.
type Canvas struct {
	mu     sync.Mutex
	id     uuid.UUID
	width  int
	height int
	depth  int
	stacks []Stack

	queues  *queues
	log     logr.Logger
	metrics *canvasMetrics
}

// NewCanvas creates an empty canvas.
//
// The changed queue holds width*height*changedFactor notifications. Producers
// never block: once it is full the next drain becomes a full redraw. The
// released queue holds width*height*depth entries: a tuxel is released at
// most once and its cell cannot be reallocated until it is reclaimed, so it
// never fills.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	o := canvasOptions{depth: DefaultDepth, changedFactor: defaultChangedFactor}
	for _, opt := range opts {
		opt(&o)
	}
	width, height = max(width, 0), max(height, 0)

	id := uuid.New()
	log := Logger()
	if o.log != nil {
		log = *o.log
	}
	log = log.WithValues("canvas", id.String())

	meter := o.meter
	if meter == nil {
		meter = telemetry.Meter("tui")
	}

	cells := max(width*height*o.depth, 1)
	c := &Canvas{
		id:      id,
		width:   width,
		height:  height,
		depth:   o.depth,
		stacks:  make([]Stack, width*height),
		queues:  newQueues(max(width*height, 1)*o.changedFactor, cells, log),
		log:     log,
		metrics: newCanvasMetrics(meter, id.String(), log),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c.stacks[y*width+x] = newStack(x, y, o.depth)
		}
	}

	log.V(1).Info("canvas created", "width", width, "height", height, "depth", o.depth)
	return c
}

// ID returns the canvas session id.
func (c *Canvas) ID() string {
	return c.id.String()
}

// Dimensions returns the canvas width and height.
func (c *Canvas) Dimensions() (int, int) {
	return c.width, c.height
}

// Depth returns the number of layers per stack.
func (c *Canvas) Depth() int {
	return c.depth
}

// Bounds returns the full-grid rectangle at depth z.
func (c *Canvas) Bounds(z int) geometry.Rectangle {
	return geometry.NewRectangle(0, 0, z, c.width, c.height)
}

func (c *Canvas) inBounds(idx geometry.Idx) bool {
	return idx.X >= 0 && idx.X < c.width &&
		idx.Y >= 0 && idx.Y < c.height &&
		idx.Z >= 0 && idx.Z < c.depth
}

func (c *Canvas) stack(idx geometry.Idx) (*Stack, error) {
	if idx.X < 0 || idx.X >= c.width || idx.Y < 0 || idx.Y >= c.height {
		return nil, fmt.Errorf("%v outside %dx%d canvas: %w", idx, c.width, c.height, ErrOutOfBounds)
	}
	return &c.stacks[idx.Y*c.width+idx.X], nil
}

func (c *Canvas) checkRectangle(r geometry.Rectangle) error {
	if r.Empty() {
		return ErrEmptyRectangle
	}
	endX, endY := r.Extents()
	if r.X() < 0 || r.Y() < 0 || endX > c.width || endY > c.height || r.Z() < 0 || r.Z() >= c.depth {
		return fmt.Errorf("%v outside %dx%dx%d canvas: %w", r, c.width, c.height, c.depth, ErrOutOfBounds)
	}
	return nil
}

// Allocate hands out exclusive ownership of every cell in r as a DrawBuffer.
// Allocation is all-or-none: if any cell is occupied nothing is acquired.
// Pending releases are reclaimed first.
func (c *Canvas) Allocate(r geometry.Rectangle) (*DrawBuffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkRectangle(r); err != nil {
		return nil, fmt.Errorf("allocate %v: %w", r, err)
	}

	c.reclaimLocked()

	idxs := r.Indices()
	for _, idx := range idxs {
		s := &c.stacks[idx.Y*c.width+idx.X]
		if !s.cells[idx.Z].Empty() {
			return nil, fmt.Errorf("allocate %v at %v: %w", r, idx, ErrCellAlreadyOwned)
		}
	}

	db := newDrawBuffer(c, r.Size)
	for i, idx := range idxs {
		t := newTuxel(idx, c.queues, db.modifiers)
		c.stacks[idx.Y*c.width+idx.X].replace(idx.Z, Cell{tuxel: t})
		db.buf[i/r.Width()][i%r.Width()] = t
	}
	db.armCleanup()

	c.metrics.add(c.metrics.allocated, len(idxs))
	c.log.V(2).Info("allocated", "rect", r.String())
	return db, nil
}

// AllocateLayer allocates the whole grid at depth z.
func (c *Canvas) AllocateLayer(z int) (*DrawBuffer, error) {
	c.log.V(1).Info("allocating layer", "z", z)
	return c.Allocate(c.Bounds(z))
}

// Changed drains the changed queue and returns a snapshot of each distinct
// stack written since the previous call. It never blocks.
func (c *Canvas) Changed() []Stack {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.queues.overflow.Swap(false) {
		c.drainChangedLocked(nil)
		c.metrics.add(c.metrics.overflow, 1)
		return c.snapshotLocked()
	}

	var stacks []Stack
	seen := make([]bool, len(c.stacks))
	c.drainChangedLocked(func(idx geometry.Idx) {
		if idx.X < 0 || idx.X >= c.width || idx.Y < 0 || idx.Y >= c.height {
			return
		}
		k := idx.Y*c.width + idx.X
		if seen[k] {
			return
		}
		seen[k] = true
		stacks = append(stacks, c.stacks[k].snapshot())
	})
	return stacks
}

func (c *Canvas) drainChangedLocked(fn func(geometry.Idx)) {
	for {
		select {
		case idx := <-c.queues.changed:
			if fn != nil {
				fn(idx)
			}
		default:
			return
		}
	}
}

// Stacks returns a snapshot of every stack in row-major order.
func (c *Canvas) Stacks() []Stack {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Canvas) snapshotLocked() []Stack {
	out := make([]Stack, len(c.stacks))
	for i := range c.stacks {
		out[i] = c.stacks[i].snapshot()
	}
	return out
}

// Reclaim drains the released queue and empties the cells still held by the
// released tuxels. Safe to call at any time.
func (c *Canvas) Reclaim() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reclaimLocked()
}

func (c *Canvas) reclaimLocked() int {
	n := 0
	for {
		select {
		case t := <-c.queues.released:
			n += c.reclaimTuxelLocked(t)
		default:
			for _, t := range c.queues.takeSpill() {
				n += c.reclaimTuxelLocked(t)
			}
			if n > 0 {
				c.metrics.add(c.metrics.reclaimed, n)
				c.log.V(2).Info("reclaimed", "cells", n)
			}
			return n
		}
	}
}

// reclaimTuxelLocked empties the cell at the tuxel's current index. The tuxel
// may have moved since it was released, so its index is read now rather than
// at release time.
func (c *Canvas) reclaimTuxelLocked(t *Tuxel) int {
	idx := t.Idx()
	if !c.inBounds(idx) {
		return 0
	}
	s := &c.stacks[idx.Y*c.width+idx.X]
	if s.cells[idx.Z].tuxel != t {
		return 0
	}
	s.replace(idx.Z, Cell{})
	c.queues.notifyChanged(idx)
	return 1
}

// Swap exchanges the cells at two indices. If the second cell cannot be
// acquired the first is restored and nothing changes. Both positions are
// reported as changed even when their appearance is identical.
func (c *Canvas) Swap(a, b geometry.Idx) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.swapLocked(a, b)
}

func (c *Canvas) swapLocked(a, b geometry.Idx) error {
	sa, err := c.stack(a)
	if err != nil {
		return fmt.Errorf("swap %v with %v: %w", a, b, err)
	}
	cellA, err := sa.acquire(a.Z)
	if err != nil {
		return fmt.Errorf("swap %v with %v: %w", a, b, err)
	}

	sb, err := c.stack(b)
	if err != nil {
		sa.replace(a.Z, cellA)
		return fmt.Errorf("swap %v with %v: %w", a, b, err)
	}
	cellB, err := sb.acquire(b.Z)
	if err != nil {
		sa.replace(a.Z, cellA)
		return fmt.Errorf("swap %v with %v: %w", a, b, err)
	}

	if cellA.tuxel != nil {
		cellA.tuxel.setIdx(b)
	}
	if cellB.tuxel != nil {
		cellB.tuxel.setIdx(a)
	}
	sa.replace(a.Z, cellB)
	sb.replace(b.Z, cellA)

	c.queues.notifyChanged(a)
	c.queues.notifyChanged(b)
	c.metrics.add(c.metrics.swaps, 1)
	return nil
}

// SwapRectangle swaps two equally sized rectangles cell by cell in row-major
// correspondence, then reclaims pending releases once. When r2 starts after
// r1 in row-major order the pairs are visited in reverse, so an overlapping
// one-cell move shifts every cell into the slot just vacated ahead of it.
// A failed pairwise swap is not rolled back; both rectangles are validated
// before the first swap so that only happens on an invariant violation.
func (c *Canvas) SwapRectangle(r1, r2 geometry.Rectangle) error {
	if r1.Size != r2.Size {
		return fmt.Errorf("swap %v with %v: %w", r1, r2, ErrDimensionMismatch)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkRectangle(r1); err != nil {
		return fmt.Errorf("swap %v with %v: %w", r1, r2, err)
	}
	if err := c.checkRectangle(r2); err != nil {
		return fmt.Errorf("swap %v with %v: %w", r1, r2, err)
	}

	from, to := r1.Indices(), r2.Indices()
	reverse := r2.Y() > r1.Y() || (r2.Y() == r1.Y() && r2.X() > r1.X())
	for i := range from {
		k := i
		if reverse {
			k = len(from) - 1 - i
		}
		if err := c.swapLocked(from[k], to[k]); err != nil {
			c.log.Error(err, "rectangle swap left partially applied", "from", r1.String(), "to", r2.String(), "applied", i)
			return err
		}
	}

	c.reclaimLocked()
	return nil
}

// Occupied counts the occupied cells at depth z, including cells released but
// not yet reclaimed.
func (c *Canvas) Occupied(z int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if z < 0 || z >= c.depth {
		return 0
	}
	n := 0
	for i := range c.stacks {
		if !c.stacks[i].cells[z].Empty() {
			n++
		}
	}
	return n
}
