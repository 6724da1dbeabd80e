package game

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tui48/internal/engine"
	"github.com/samdwyer/tui48/internal/geometry"
	"github.com/samdwyer/tui48/internal/tui"
)

var errMissingTile = errors.New("no tile in slot")

// slidingTile is a tile buffer on its way to another slot.
type slidingTile struct {
	buf       *tui.DrawBuffer
	dir       geometry.Direction
	remaining int
}

// slide lifts every tile the hint moves onto an animation layer: plain moves
// pass below the static tiles, merging tiles pass above them. New cards are
// not animated; they appear when the view is rebuilt.
//
// Tiles come back in hint order, which walks each line from the edge the
// cards move toward. Stepping them in that order moves leading tiles first so
// tiles sharing a layer never overlap.
func (v *boardView) slide(hint *engine.AnimationHint, dir geometry.Direction) ([]*slidingTile, error) {
	var tiles []*slidingTile
	for _, m := range hint.Moves() {
		var z int
		switch m.Hint.Kind {
		case engine.HintToIdx:
			z = lowerAnimationLayer
		case engine.HintNewValueToIdx:
			z = upperAnimationLayer
		default:
			continue
		}

		buf, ok := v.tiles[m.From]
		if !ok {
			return nil, fmt.Errorf("slide %s: %w", m.From, errMissingTile)
		}
		if err := buf.SwitchLayer(z); err != nil {
			return nil, fmt.Errorf("slide %s: %w", m.From, err)
		}
		tiles = append(tiles, &slidingTile{
			buf:       buf,
			dir:       dir,
			remaining: slotDistance(m.From, m.Hint.To),
		})
	}
	return tiles, nil
}

// step moves every unfinished tile one cell. It returns false once all tiles
// have arrived.
func step(tiles []*slidingTile) (bool, error) {
	moved := false
	for _, t := range tiles {
		if t.remaining == 0 {
			continue
		}
		if err := t.buf.Translate(t.dir); err != nil {
			return false, err
		}
		t.remaining--
		moved = true
	}
	return moved, nil
}

// animate plays a shift: the tiles slide frame by frame, then the view is
// rebuilt from the new round.
func (g *Game) animate(ctx context.Context, hint *engine.AnimationHint, dir geometry.Direction) error {
	_, span := g.tracer.Start(ctx, "board.animate")
	defer span.End()

	tiles, err := g.view.slide(hint, dir)
	if err != nil {
		span.RecordError(err)
		return err
	}

	frames := 0
	for {
		moved, err := step(tiles)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if !moved {
			break
		}
		frames++
		g.renderer.Render(g.canvas)
		if err := g.sleep(ctx); err != nil {
			return err
		}
	}

	span.SetAttributes(
		attribute.String("shift.direction", dir.String()),
		attribute.Int("animation.tiles", len(tiles)),
		attribute.Int("animation.frames", frames),
	)
	g.log.V(2).Info("animated shift", "direction", dir.String(), "tiles", len(tiles), "frames", frames)
	return nil
}
