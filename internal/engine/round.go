// Package engine implements the 2048 rules: sliding and merging cards on a
// 4x4 grid, spawning new cards and keeping score.
package engine

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/samdwyer/tui48/internal/geometry"
)

// Size is the number of slots on each side of the board.
const Size = 4

// MaxCard is the largest card a slot can hold. Two MaxCard cards do not merge.
const MaxCard uint16 = 1 << 15

// New cards are 2 nine times out of ten and 4 otherwise.
var (
	newCardValues  = [...]uint16{2, 4}
	newCardWeights = [...]int{9, 1}
)

// Idx addresses a slot on the board.
type Idx struct {
	X, Y int
}

func (i Idx) String() string {
	return fmt.Sprintf("ridx(%d,%d)", i.X, i.Y)
}

// Round is one board state. Zero slots are empty.
type Round struct {
	slots [Size][Size]uint16
	score int
}

// NewRound returns a round with the given slots, indexed [y][x].
func NewRound(slots [Size][Size]uint16, score int) Round {
	return Round{slots: slots, score: score}
}

// RandomRound returns a round with two 2s in distinct random slots.
func RandomRound(rng *rand.Rand) Round {
	var r Round
	first := rng.Intn(Size * Size)
	second := rng.Intn(Size*Size - 1)
	if second >= first {
		second++
	}
	r.slots[first/Size][first%Size] = 2
	r.slots[second/Size][second%Size] = 2
	return r
}

// Score returns the sum of the values of every card eliminated by a merge.
func (r Round) Score() int {
	return r.score
}

// Get returns the card at idx, or zero if the slot is empty.
func (r Round) Get(idx Idx) uint16 {
	return r.slots[idx.Y][idx.X]
}

func (r *Round) set(idx Idx, v uint16) {
	r.slots[idx.Y][idx.X] = v
}

func mergeable(a, b uint16) bool {
	return a != 0 && a == b && a < MaxCard
}

// Slots returns a copy of the grid indexed [y][x].
func (r Round) Slots() [Size][Size]uint16 {
	return r.slots
}

// Highest returns the largest card on the board.
func (r Round) Highest() uint16 {
	var best uint16
	for _, row := range r.slots {
		for _, v := range row {
			best = max(best, v)
		}
	}
	return best
}

// lines returns the slots grouped into lines along dir. Each line starts at
// the edge the cards slide toward.
func lines(dir geometry.Direction) [Size][Size]Idx {
	var out [Size][Size]Idx
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			switch dir {
			case geometry.Left:
				out[i][j] = Idx{X: j, Y: i}
			case geometry.Right:
				out[i][j] = Idx{X: Size - 1 - j, Y: i}
			case geometry.Up:
				out[i][j] = Idx{X: i, Y: j}
			default:
				out[i][j] = Idx{X: i, Y: Size - 1 - j}
			}
		}
	}
	return out
}

// slide moves and merges every line toward dir. A pivot walks each line from
// the leading edge; the next non-empty card after it either fills an empty
// pivot, merges into an equal pivot, or stops against a different one.
func (r *Round) slide(dir geometry.Direction) *AnimationHint {
	hint := &AnimationHint{}
	for _, line := range lines(dir) {
		p := 0
		for c := 1; c < Size; c++ {
			pivot, cmp := r.Get(line[p]), r.Get(line[c])
			if cmp == 0 {
				continue
			}
			if pivot == 0 {
				r.set(line[p], cmp)
				r.set(line[c], 0)
				hint.set(line[c], ToIdx(line[p]))
				continue
			}
			if mergeable(pivot, cmp) {
				r.score += int(cmp)
				r.set(line[p], pivot+cmp)
				r.set(line[c], 0)
				hint.set(line[c], NewValueToIdx(pivot+cmp, line[p]))
			}
			// The pivot is settled; compare from the slot after the next one.
			p++
			c = p
		}
	}
	return hint
}

// Shift slides the round toward dir. If anything changed, a new card is placed
// in a random empty slot on the trailing edge and true is returned along with
// a hint describing every change.
func (r *Round) Shift(rng *rand.Rand, dir geometry.Direction) (*AnimationHint, bool) {
	hint := r.slide(dir)
	if !hint.Changed() {
		return hint, false
	}

	var free []Idx
	for _, line := range lines(dir) {
		if tail := line[Size-1]; r.Get(tail) == 0 {
			free = append(free, tail)
		}
	}
	// A line that changed always frees its trailing slot.
	idx := free[rng.Intn(len(free))]
	v := newCardValue(rng)
	r.set(idx, v)
	hint.set(idx, NewTile(v, dir))
	return hint, true
}

func newCardValue(rng *rand.Rand) uint16 {
	total := 0
	for _, w := range newCardWeights {
		total += w
	}
	n := rng.Intn(total)
	for i, w := range newCardWeights {
		if n < w {
			return newCardValues[i]
		}
		n -= w
	}
	return newCardValues[0]
}

// IsGameOver returns true when no slot is empty and no two neighbors can
// merge.
func (r Round) IsGameOver() bool {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			v := r.slots[y][x]
			if v == 0 {
				return false
			}
			if x+1 < Size && mergeable(v, r.slots[y][x+1]) {
				return false
			}
			if y+1 < Size && mergeable(v, r.slots[y+1][x]) {
				return false
			}
		}
	}
	return true
}

func (r Round) String() string {
	var b strings.Builder
	for _, row := range r.slots {
		for x, v := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%4d", v)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "score: %d", r.score)
	return b.String()
}
