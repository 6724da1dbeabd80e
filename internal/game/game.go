package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/tui48/internal/colors"
	"github.com/samdwyer/tui48/internal/engine"
	"github.com/samdwyer/tui48/internal/gamedata"
	"github.com/samdwyer/tui48/internal/geometry"
	"github.com/samdwyer/tui48/internal/telemetry"
	"github.com/samdwyer/tui48/internal/tui"
	"github.com/samdwyer/tui48/internal/ui"
)

// Game holds the entire game state.
type Game struct {
	cfg    Config
	log    logr.Logger
	tracer trace.Tracer

	screen   *ui.Screen
	renderer *ui.Renderer
	canvas   *tui.Canvas

	board   *engine.Board
	theme   *gamedata.ThemeDef
	palette *colors.Palette

	view    *boardView
	message *tui.DrawBuffer
	state   State
	running bool
}

// New creates a new game instance on the terminal.
func New(cfg Config, log logr.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(screen, cfg, log)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(screen *ui.Screen, cfg Config, log logr.Logger) (*Game, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Depth <= messageLayer {
		cfg.Depth = tui.DefaultDepth
	}
	log = log.WithName("game")
	rng := rand.New(rand.NewSource(cfg.Seed))

	themes, err := gamedata.LoadThemeRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading themes: %w", err)
	}
	theme, ok := themes.Resolve(cfg.Theme, rng)
	if !ok {
		log.Info("unknown theme, using default", "theme", cfg.Theme, "default", theme.ID, "available", themes.IDs())
	}
	log.V(1).Info("themes loaded", "count", themes.Count(), "theme", theme.ID)

	return &Game{
		cfg:      cfg,
		log:      log,
		tracer:   telemetry.Tracer("game"),
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		board:    engine.NewBoard(rng),
		theme:    theme,
		palette:  colors.NewPalette(theme.Cards.PaletteSpec()),
		state:    StatePlaying,
		running:  true,
	}, nil
}

// State returns the current game state.
func (g *Game) State() State {
	return g.state
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.board.Score()
}

// Run executes the main game loop until the player quits. The screen is
// closed when Run returns.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	// Initialize game (traced)
	initCtx, initSpan := g.tracer.Start(ctx, "game.init")
	if err := g.resize(initCtx); err != nil {
		initSpan.RecordError(err)
		initSpan.End()
		return err
	}
	w, h := g.canvas.Dimensions()
	initSpan.SetAttributes(
		attribute.Int64("game.seed", g.cfg.Seed),
		attribute.String("game.theme", g.theme.ID),
		attribute.String("game.state", g.state.String()),
		attribute.String("canvas.id", g.canvas.ID()),
		attribute.Int("canvas.width", w),
		attribute.Int("canvas.height", h),
	)
	initSpan.End()
	g.renderer.Clear(g.canvas)

	// Main game loop
	for g.running {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Render current state
		g.renderer.Render(g.canvas)

		// Handle input (blocking)
		if err := g.handleEvent(ctx, g.screen.NextEvent()); err != nil {
			return err
		}
	}

	g.log.V(1).Info("game finished", "score", g.board.Score(), "rounds", g.board.Rounds(), "state", g.state.String())
	return nil
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev ui.Event) error {
	switch ev.Kind {
	case ui.EventQuit:
		g.running = false
	case ui.EventResize:
		if err := g.resize(ctx); err != nil {
			return err
		}
		g.renderer.Clear(g.canvas)
	case ui.EventRedraw:
		g.renderer.Clear(g.canvas)
	case ui.EventShift:
		if g.state != StatePlaying {
			return nil
		}
		return g.shift(ctx, ev.Direction)
	}
	return nil
}

// shift plays a move, animates it and redraws the board.
func (g *Game) shift(ctx context.Context, dir geometry.Direction) error {
	hint, changed := g.board.Shift(ctx, dir)
	if !changed {
		return nil
	}
	g.log.V(2).Info("shifted", "direction", dir.String(), "hint", hint.String())

	if !g.cfg.RedrawEntire {
		if err := g.animate(ctx, hint, dir); err != nil {
			return fmt.Errorf("animating %s: %w", dir, err)
		}
	}
	return g.layout(ctx)
}

// resize replaces the canvas with one matching the screen and lays the board
// out again.
func (g *Game) resize(ctx context.Context) error {
	g.clearView()
	w, h := g.screen.Size()
	g.canvas = tui.NewCanvas(w, h, tui.WithDepth(g.cfg.Depth), tui.WithLogger(g.log))
	return g.layout(ctx)
}

// layout rebuilds the board view from the current round. A terminal that is
// too small shows a warning instead.
func (g *Game) layout(ctx context.Context) error {
	_, span := g.tracer.Start(ctx, "board.layout")
	defer span.End()

	g.clearView()
	view, err := newBoardView(g.canvas, g.board.Current(), g.theme, g.palette, g.log)
	if err != nil {
		if !isTooSmall(err) {
			span.RecordError(err)
			return fmt.Errorf("laying out board: %w", err)
		}
		g.state = StateTooSmall
		span.SetAttributes(attribute.String("game.state", g.state.String()))
		g.log.V(1).Info("terminal too small", "error", err.Error())

		msg, err := showTooSmall(g.canvas)
		if err != nil {
			// A zero-sized terminal has no room for the message either.
			g.log.V(1).Info("cannot show message", "error", err.Error())
			return nil
		}
		g.message = msg
		return nil
	}

	g.view = view
	prev := g.state
	g.state = StatePlaying
	if g.board.IsGameOver() {
		g.state = StateGameOver
		if prev != StateGameOver {
			g.log.Info("game over", "score", g.board.Score(), "highest", g.board.Current().Highest(), "rounds", g.board.Rounds())
		}
		tb, err := view.gameOver(g.board.Score())
		if err != nil {
			span.RecordError(err)
			return err
		}
		g.message = tb.DrawBuffer
	}

	span.SetAttributes(
		attribute.String("game.state", g.state.String()),
		attribute.Int("board.score", g.board.Score()),
		attribute.Int("board.highest", int(g.board.Current().Highest())),
		attribute.Int("board.tiles", len(view.tiles)),
	)
	return nil
}

func (g *Game) clearView() {
	if g.message != nil {
		g.message.Release()
		g.message = nil
	}
	if g.view != nil {
		g.view.release()
		g.view = nil
	}
}

// sleep waits one animation frame.
func (g *Game) sleep(ctx context.Context) error {
	if g.cfg.FrameDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(g.cfg.FrameDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.clearView()
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
