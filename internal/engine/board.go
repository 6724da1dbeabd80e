package engine

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tui48/internal/geometry"
	"github.com/samdwyer/tui48/internal/telemetry"
)

const historyCapacity = 2000

// Board is a 2048 game and the history of its rounds.
type Board struct {
	rng    *rand.Rand
	rounds []Round
}

// NewBoard starts a game with a random opening round.
func NewBoard(rng *rand.Rand) *Board {
	rounds := make([]Round, 0, historyCapacity)
	rounds = append(rounds, RandomRound(rng))
	return &Board{rng: rng, rounds: rounds}
}

// NewBoardFrom starts a game from an explicit round.
func NewBoardFrom(rng *rand.Rand, initial Round) *Board {
	rounds := make([]Round, 0, historyCapacity)
	rounds = append(rounds, initial)
	return &Board{rng: rng, rounds: rounds}
}

// Current returns the latest round.
func (b *Board) Current() Round {
	return b.rounds[len(b.rounds)-1]
}

// Score returns the latest round's score.
func (b *Board) Score() int {
	return b.Current().Score()
}

// Rounds returns how many rounds have been played, including the opening one.
func (b *Board) Rounds() int {
	return len(b.rounds)
}

// IsGameOver reports whether the latest round has no legal move.
func (b *Board) IsGameOver() bool {
	return b.Current().IsGameOver()
}

// Shift plays one move. When nothing moves the history is unchanged and false
// is returned.
func (b *Board) Shift(ctx context.Context, dir geometry.Direction) (*AnimationHint, bool) {
	_, span := telemetry.Tracer("engine").Start(ctx, "board.shift")
	defer span.End()

	next := b.Current()
	hint, changed := next.Shift(b.rng, dir)
	if changed {
		b.rounds = append(b.rounds, next)
	}

	span.SetAttributes(
		attribute.String("shift.direction", dir.String()),
		attribute.Bool("shift.changed", changed),
		attribute.Int("shift.moves", hint.Len()),
		attribute.Int("board.score", b.Score()),
		attribute.Int("board.rounds", len(b.rounds)),
	)
	return hint, changed
}
