package engine

import (
	"fmt"
	"strings"

	"github.com/samdwyer/tui48/internal/geometry"
)

// HintKind says what happened to a slot during a shift.
type HintKind int

const (
	// HintToIdx means the card slid to another slot without merging.
	HintToIdx HintKind = iota
	// HintNewValueToIdx means the card slid into another slot and merged,
	// producing Value there.
	HintNewValueToIdx
	// HintNewTile means a new card of Value appeared. Direction is the shift
	// that caused it.
	HintNewTile
)

// String returns a human-readable hint kind.
func (k HintKind) String() string {
	switch k {
	case HintToIdx:
		return "to_idx"
	case HintNewValueToIdx:
		return "new_value_to_idx"
	case HintNewTile:
		return "new_tile"
	default:
		return "unknown"
	}
}

// Hint describes how one slot changed.
type Hint struct {
	Kind      HintKind
	To        Idx
	Value     uint16
	Direction geometry.Direction
}

// ToIdx returns a slide hint.
func ToIdx(to Idx) Hint {
	return Hint{Kind: HintToIdx, To: to}
}

// NewValueToIdx returns a merge hint.
func NewValueToIdx(value uint16, to Idx) Hint {
	return Hint{Kind: HintNewValueToIdx, To: to, Value: value}
}

// NewTile returns a new-card hint.
func NewTile(value uint16, dir geometry.Direction) Hint {
	return Hint{Kind: HintNewTile, Value: value, Direction: dir}
}

func (h Hint) String() string {
	switch h.Kind {
	case HintToIdx:
		return fmt.Sprintf("%s(%s)", h.Kind, h.To)
	case HintNewValueToIdx:
		return fmt.Sprintf("%s(%d, %s)", h.Kind, h.Value, h.To)
	default:
		return fmt.Sprintf("%s(%d, %s)", h.Kind, h.Value, h.Direction)
	}
}

// Move pairs a source slot with what happened to it.
type Move struct {
	From Idx
	Hint Hint
}

// AnimationHint records every slot change of a single shift, in the order the
// changes were made.
type AnimationHint struct {
	moves []Move
}

func (a *AnimationHint) set(from Idx, h Hint) {
	a.moves = append(a.moves, Move{From: from, Hint: h})
}

// Moves returns a copy of the recorded changes.
func (a *AnimationHint) Moves() []Move {
	out := make([]Move, len(a.moves))
	copy(out, a.moves)
	return out
}

// Len returns the number of recorded changes.
func (a *AnimationHint) Len() int {
	return len(a.moves)
}

// Changed returns true if the shift moved, merged or added anything.
func (a *AnimationHint) Changed() bool {
	return len(a.moves) > 0
}

func (a *AnimationHint) String() string {
	var b strings.Builder
	for _, m := range a.moves {
		fmt.Fprintf(&b, "%s - %s\n", m.From, m.Hint)
	}
	return b.String()
}
