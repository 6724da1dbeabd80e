package engine

import (
	"strings"
	"testing"

	"github.com/samdwyer/tui48/internal/geometry"
)

func TestHintString(t *testing.T) {
	tests := []struct {
		hint Hint
		want string
	}{
		{ToIdx(Idx{1, 2}), "to_idx(ridx(1,2))"},
		{NewValueToIdx(8, Idx{0, 3}), "new_value_to_idx(8, ridx(0,3))"},
		{NewTile(2, geometry.Up), "new_tile(2, up)"},
	}

	for _, tt := range tests {
		if got := tt.hint.String(); got != tt.want {
			t.Errorf("Hint.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestHintKindString(t *testing.T) {
	if got := HintKind(99).String(); got != "unknown" {
		t.Errorf("HintKind(99).String() = %q, want %q", got, "unknown")
	}
}

func TestAnimationHintMovesIsACopy(t *testing.T) {
	var a AnimationHint
	if a.Changed() {
		t.Error("Changed() = true for an empty hint")
	}
	a.set(Idx{0, 0}, ToIdx(Idx{1, 0}))

	moves := a.Moves()
	moves[0].From = Idx{3, 3}
	if a.Moves()[0].From != (Idx{0, 0}) {
		t.Error("Moves() exposed internal state")
	}
	if !strings.Contains(a.String(), "ridx(0,0) - to_idx(ridx(1,0))") {
		t.Errorf("String() = %q", a.String())
	}
}
