package game

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"

	"github.com/samdwyer/tui48/internal/colors"
	"github.com/samdwyer/tui48/internal/engine"
	"github.com/samdwyer/tui48/internal/gamedata"
	"github.com/samdwyer/tui48/internal/geometry"
	"github.com/samdwyer/tui48/internal/tui"
)

// Board layout, in terminal cells:
//
//	     score
//	╔══════════════════════════════════╗  y=5
//	║                                  ║
//	║  xxxxxx  xxxxxx  xxxxxx  xxxxxx  ║  tiles are 6x5, two columns
//	║  xxxxxx  xxxxxx  xxxxxx  xxxxxx  ║  apart and one row apart
//	...
//	╚══════════════════════════════════╝  y=29
//	x=5                                x=40
const (
	boardX, boardY          = 5, 5
	boardWidth, boardHeight = 36, 25
	boardBorder             = 1
	boardXPadding           = 2
	boardYPadding           = 1
	tileWidth, tileHeight   = 6, 5

	scoreX, scoreY          = 18, 1
	scoreWidth, scoreHeight = 10, 3

	gameOverWidth, gameOverHeight = 20, 5
)

// Canvas layers, bottom to top.
const (
	boardLayer          = 2
	lowerAnimationLayer = 3
	tileLayer           = 4
	upperAnimationLayer = 5
	messageLayer        = 7
)

const tooSmallMessage = "hey there! something is wrong! try resizing your terminal!"

// Minimum canvas size that fits the board.
var minWidth, minHeight = geometry.NewRectangle(boardX, boardY, boardLayer, boardWidth, boardHeight).Extents()

// tileRectangle returns the footprint of the tile in slot (x, y) at depth z.
func tileRectangle(x, y, z int) geometry.Rectangle {
	x0 := boardX + boardBorder + boardXPadding
	y0 := boardY + boardBorder
	return geometry.NewRectangle(
		x0+(boardXPadding+tileWidth)*x,
		y0+(boardYPadding+tileHeight)*y,
		z,
		tileWidth,
		tileHeight,
	)
}

// slotDistance returns how many cells a tile travels between two slots.
func slotDistance(from, to engine.Idx) int {
	dx := (to.X - from.X) * (boardXPadding + tileWidth)
	dy := (to.Y - from.Y) * (boardYPadding + tileHeight)
	return max(dx, -dx) + max(dy, -dy)
}

// boardView draws one round of the game onto a canvas. It owns every draw
// buffer it allocates; release frees them all.
type boardView struct {
	canvas  *tui.Canvas
	theme   *gamedata.ThemeDef
	palette *colors.Palette
	log     logr.Logger

	board *tui.DrawBuffer
	score *tui.DrawBuffer
	tiles map[engine.Idx]*tui.DrawBuffer
}

// newBoardView lays out the board, the score box and a tile per card. A
// canvas that cannot fit the board returns *tui.TerminalTooSmallError.
func newBoardView(c *tui.Canvas, round engine.Round, theme *gamedata.ThemeDef, palette *colors.Palette, log logr.Logger) (*boardView, error) {
	if w, h := c.Dimensions(); w < minWidth || h < minHeight {
		return nil, &tui.TerminalTooSmallError{Width: w, Height: h, MinWidth: minWidth, MinHeight: minHeight}
	}

	v := &boardView{
		canvas:  c,
		theme:   theme,
		palette: palette,
		log:     log,
		tiles:   make(map[engine.Idx]*tui.DrawBuffer),
	}
	if err := v.layout(round); err != nil {
		v.release()
		return nil, err
	}

	log.V(2).Info("board laid out",
		"tiles", len(v.tiles),
		"boardCells", c.Occupied(boardLayer),
		"tileCells", c.Occupied(tileLayer))
	return v, nil
}

func (v *boardView) layout(round engine.Round) error {
	var err error
	v.board, err = v.canvas.Allocate(geometry.NewRectangle(boardX, boardY, boardLayer, boardWidth, boardHeight))
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if err := v.board.DrawBorder(); err != nil {
		return err
	}
	if err := v.board.Fill(' '); err != nil {
		return err
	}
	if err := applySurface(v.board, &v.theme.Board); err != nil {
		return fmt.Errorf("board theme: %w", err)
	}

	v.score, err = v.canvas.Allocate(geometry.NewRectangle(scoreX, scoreY, boardLayer, scoreWidth, scoreHeight))
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if err := v.drawScore(round.Score()); err != nil {
		return err
	}

	for y, row := range round.Slots() {
		for x, value := range row {
			idx := engine.Idx{X: x, Y: y}
			if value == 0 {
				continue
			}
			t, err := v.canvas.Allocate(tileRectangle(x, y, tileLayer))
			if err != nil {
				return fmt.Errorf("tile %s: %w", idx, err)
			}
			v.tiles[idx] = t
			if err := v.drawTile(t, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *boardView) drawScore(score int) error {
	if err := v.score.DrawBorder(); err != nil {
		return err
	}
	if err := v.score.Fill(' '); err != nil {
		return err
	}
	if err := v.score.WriteRight(strconv.Itoa(score)); err != nil {
		return err
	}
	if err := applySurface(v.score, &v.theme.Score); err != nil {
		return fmt.Errorf("score theme: %w", err)
	}
	return nil
}

func (v *boardView) drawTile(t *tui.DrawBuffer, value uint16) error {
	card := v.palette.Card(value)
	t.Modify(tui.SetBackground(card.Background))
	t.Modify(tui.SetForeground(card.Foreground))
	if err := t.DrawBorder(); err != nil {
		return err
	}
	if err := t.Fill(' '); err != nil {
		return err
	}
	return t.WriteCenter(strconv.Itoa(int(value)))
}

// applySurface queues a theme surface's colors as modifiers.
func applySurface(db *tui.DrawBuffer, s *gamedata.SurfaceDef) error {
	bg, fg, err := s.Colors()
	if err != nil {
		return err
	}
	db.Modify(tui.SetBackground(bg))
	db.Modify(tui.LightenBackground(s.BackgroundLighten))
	db.Modify(tui.SetForeground(fg))
	db.Modify(tui.LightenForeground(s.ForegroundLighten))
	return nil
}

// gameOver draws a message box over the middle of the board on the message
// layer. The caller releases the returned buffer.
func (v *boardView) gameOver(score int) (*tui.TextBuffer, error) {
	r := geometry.NewRectangle(
		boardX+(boardWidth-gameOverWidth)/2,
		boardY+(boardHeight-gameOverHeight)/2,
		messageLayer,
		gameOverWidth,
		gameOverHeight,
	)
	db, err := v.canvas.Allocate(r)
	if err != nil {
		return nil, fmt.Errorf("game over message: %w", err)
	}
	tb := tui.NewTextBuffer(db)
	if err := tb.DrawBorder(); err != nil {
		tb.Release()
		return nil, err
	}
	if err := tb.Fill(' '); err != nil {
		tb.Release()
		return nil, err
	}
	if err := applySurface(db, &v.theme.Score); err != nil {
		tb.Release()
		return nil, err
	}
	tb.Write("game over!", nil, nil)
	tb.Write("score "+strconv.Itoa(score), nil, nil)
	if err := tb.Flush(); err != nil {
		tb.Release()
		return nil, err
	}
	return tb, nil
}

// release frees every buffer the view owns.
func (v *boardView) release() {
	for idx, t := range v.tiles {
		t.Release()
		delete(v.tiles, idx)
	}
	if v.score != nil {
		v.score.Release()
		v.score = nil
	}
	if v.board != nil {
		v.board.Release()
		v.board = nil
	}
}

// showTooSmall fills the middle row of the message layer with a warning.
// The caller releases the returned buffer.
func showTooSmall(c *tui.Canvas) (*tui.DrawBuffer, error) {
	db, err := c.AllocateLayer(messageLayer)
	if err != nil {
		return nil, fmt.Errorf("too small message: %w", err)
	}
	if err := db.WriteLeft(tooSmallMessage); err != nil {
		db.Release()
		return nil, err
	}
	return db, nil
}

// isTooSmall reports whether err means the terminal cannot fit the board.
func isTooSmall(err error) bool {
	var tooSmall *tui.TerminalTooSmallError
	return errors.As(err, &tooSmall)
}
