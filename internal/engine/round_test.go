package engine

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/tui48/internal/geometry"
)

type grid = [Size][Size]uint16

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestSlide(t *testing.T) {
	tests := []struct {
		name      string
		dir       geometry.Direction
		initial   grid
		score     int
		want      grid
		wantScore int
	}{
		{
			name:    "identity left",
			dir:     geometry.Left,
			initial: grid{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}},
			want:    grid{{1, 0, 0, 0}, {1, 0, 0, 0}, {1, 0, 0, 0}, {1, 0, 0, 0}},
		},
		{
			name:    "identity right",
			dir:     geometry.Right,
			initial: grid{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}},
			want:    grid{{0, 0, 0, 1}, {0, 0, 0, 1}, {0, 0, 0, 1}, {0, 0, 0, 1}},
		},
		{
			name:    "identity up",
			dir:     geometry.Up,
			initial: grid{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}},
			want:    grid{{1, 1, 1, 1}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		},
		{
			name:    "identity down",
			dir:     geometry.Down,
			initial: grid{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}},
			want:    grid{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {1, 1, 1, 1}},
		},
		{
			name:    "flipped identity up",
			dir:     geometry.Up,
			initial: grid{{0, 0, 0, 1}, {0, 0, 1, 0}, {0, 1, 0, 0}, {1, 0, 0, 0}},
			want:    grid{{1, 1, 1, 1}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		},
		{
			name:    "pivot is zero with multiple shift elements",
			dir:     geometry.Left,
			initial: grid{{0, 1, 2, 3}},
			want:    grid{{1, 2, 3, 0}},
		},
		{
			name:      "all ones",
			dir:       geometry.Left,
			initial:   grid{{1, 1, 1, 1}},
			want:      grid{{2, 2, 0, 0}},
			wantScore: 2,
		},
		{
			name:      "combine twos then shift remaining",
			dir:       geometry.Left,
			initial:   grid{{2, 2, 0, 2}},
			score:     2,
			want:      grid{{4, 2, 0, 0}},
			wantScore: 4,
		},
		{
			name:      "combine across a gap",
			dir:       geometry.Left,
			initial:   grid{{2, 0, 2, 2}},
			score:     2,
			want:      grid{{4, 2, 0, 0}},
			wantScore: 4,
		},
		{
			name:      "combine twos ignoring four",
			dir:       geometry.Left,
			initial:   grid{{4, 2, 0, 2}},
			score:     4,
			want:      grid{{4, 4, 0, 0}},
			wantScore: 6,
		},
		{
			name:      "no compatible combinations",
			dir:       geometry.Left,
			initial:   grid{{2, 4, 8, 16}},
			score:     4,
			want:      grid{{2, 4, 8, 16}},
			wantScore: 4,
		},
		{
			name:      "all ones right",
			dir:       geometry.Right,
			initial:   grid{{1, 1, 1, 1}},
			want:      grid{{0, 0, 2, 2}},
			wantScore: 2,
		},
		{
			name:      "combine twos right",
			dir:       geometry.Right,
			initial:   grid{{2, 2, 0, 2}},
			score:     2,
			want:      grid{{0, 0, 2, 4}},
			wantScore: 4,
		},
		{
			name:      "combine twos ignoring four right",
			dir:       geometry.Right,
			initial:   grid{{4, 2, 0, 2}},
			score:     4,
			want:      grid{{0, 0, 4, 4}},
			wantScore: 6,
		},
		{
			name:      "merged card does not merge again",
			dir:       geometry.Down,
			initial:   grid{{2, 0, 0, 0}, {2, 0, 0, 0}, {4, 0, 0, 0}, {0, 0, 0, 0}},
			want:      grid{{0, 0, 0, 0}, {0, 0, 0, 0}, {4, 0, 0, 0}, {4, 0, 0, 0}},
			wantScore: 2,
		},
		{
			name:    "largest cards do not merge",
			dir:     geometry.Left,
			initial: grid{{MaxCard, 0, MaxCard, 0}},
			want:    grid{{MaxCard, MaxCard, 0, 0}},
		},
		{
			name:      "merge into the largest card",
			dir:       geometry.Left,
			initial:   grid{{MaxCard / 2, MaxCard / 2, MaxCard, 0}},
			want:      grid{{MaxCard, MaxCard, 0, 0}},
			wantScore: int(MaxCard / 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRound(tt.initial, tt.score)
			r.slide(tt.dir)
			if r.Slots() != tt.want {
				t.Errorf("slide(%s) =\n%v\nwant\n%v", tt.dir, r, NewRound(tt.want, tt.wantScore))
			}
			if r.Score() != tt.wantScore {
				t.Errorf("slide(%s) score = %d, want %d", tt.dir, r.Score(), tt.wantScore)
			}
		})
	}
}

func TestSlideHints(t *testing.T) {
	r := NewRound(grid{{1, 1, 1, 1}}, 0)
	hint := r.slide(geometry.Left)

	want := []Move{
		{From: Idx{1, 0}, Hint: NewValueToIdx(2, Idx{0, 0})},
		{From: Idx{2, 0}, Hint: ToIdx(Idx{1, 0})},
		{From: Idx{3, 0}, Hint: NewValueToIdx(2, Idx{1, 0})},
	}
	got := hint.Moves()
	if len(got) != len(want) {
		t.Fatalf("Moves() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Moves()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShiftAddsOneCard(t *testing.T) {
	initial := grid{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}

	for _, dir := range geometry.Directions {
		t.Run(dir.String(), func(t *testing.T) {
			slid := NewRound(initial, 0)
			slid.slide(dir)

			r := NewRound(initial, 0)
			hint, changed := r.Shift(testRNG(), dir)
			if !changed {
				t.Fatalf("Shift(%s) changed = false, want true", dir)
			}

			moves := hint.Moves()
			last := moves[len(moves)-1]
			if last.Hint.Kind != HintNewTile || last.Hint.Direction != dir {
				t.Fatalf("last hint = %v, want new tile for %s", last.Hint, dir)
			}
			if v := last.Hint.Value; v != 2 && v != 4 {
				t.Errorf("new card value = %d, want 2 or 4", v)
			}
			if slid.Get(last.From) != 0 {
				t.Errorf("new card at %v replaced %d", last.From, slid.Get(last.From))
			}
			tail := lines(dir)
			onEdge := false
			for _, line := range tail {
				if line[Size-1] == last.From {
					onEdge = true
				}
			}
			if !onEdge {
				t.Errorf("new card at %v is not on the trailing edge for %s", last.From, dir)
			}

			slid.set(last.From, last.Hint.Value)
			if r.Slots() != slid.Slots() {
				t.Errorf("Shift(%s) =\n%v\nwant\n%v", dir, r, slid)
			}
		})
	}
}

func TestShiftNoChange(t *testing.T) {
	tests := []struct {
		name    string
		initial grid
		dir     geometry.Direction
	}{
		{"empty", grid{}, geometry.Left},
		{"packed left", grid{{2, 4, 8, 16}}, geometry.Left},
		{"packed up", grid{{2, 4}, {4, 2}}, geometry.Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRound(tt.initial, 7)
			hint, changed := r.Shift(testRNG(), tt.dir)
			if changed || hint.Changed() {
				t.Errorf("Shift(%s) changed = true, want false", tt.dir)
			}
			if r.Slots() != tt.initial || r.Score() != 7 {
				t.Errorf("Shift(%s) modified the round:\n%v", tt.dir, r)
			}
		})
	}
}

func TestShiftReproducible(t *testing.T) {
	play := func(seed int64) Round {
		rng := rand.New(rand.NewSource(seed))
		r := RandomRound(rng)
		for i := 0; i < 50; i++ {
			r.Shift(rng, geometry.Directions[i%len(geometry.Directions)])
		}
		return r
	}

	a, b := play(12345), play(12345)
	if a.Slots() != b.Slots() || a.Score() != b.Score() {
		t.Errorf("same seed produced different games:\n%v\n%v", a, b)
	}
}

func TestRandomRound(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		r := RandomRound(rand.New(rand.NewSource(seed)))
		count := 0
		for _, row := range r.Slots() {
			for _, v := range row {
				switch v {
				case 0:
				case 2:
					count++
				default:
					t.Fatalf("seed %d: unexpected card %d", seed, v)
				}
			}
		}
		if count != 2 {
			t.Errorf("seed %d: %d cards, want 2", seed, count)
		}
	}
}

func TestIsGameOver(t *testing.T) {
	tests := []struct {
		name  string
		slots grid
		want  bool
	}{
		{"empty slot", grid{{2, 4, 2, 4}, {4, 2, 4, 2}, {2, 4, 2, 4}, {4, 2, 4, 0}}, false},
		{"horizontal pair", grid{{2, 2, 4, 8}, {4, 8, 16, 32}, {8, 16, 32, 64}, {16, 32, 64, 128}}, false},
		{"vertical pair", grid{{2, 4, 8, 16}, {2, 8, 16, 32}, {8, 16, 32, 64}, {16, 32, 64, 128}}, false},
		{"stuck", grid{{2, 4, 2, 4}, {4, 2, 4, 2}, {2, 4, 2, 4}, {4, 2, 4, 2}}, true},
		{"stuck on largest cards", grid{{MaxCard, MaxCard, 2, 4}, {MaxCard, 2, 4, 2}, {2, 4, 2, 4}, {4, 2, 4, 2}}, true},
	}

	for _, tt := range tests {
		r := NewRound(tt.slots, 0)
		if got := r.IsGameOver(); got != tt.want {
			t.Errorf("%s: IsGameOver() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHighest(t *testing.T) {
	r := NewRound(grid{{2, 0, 0, 0}, {0, 64, 0, 0}, {0, 0, 8, 0}}, 0)
	if got := r.Highest(); got != 64 {
		t.Errorf("Highest() = %d, want 64", got)
	}
}
