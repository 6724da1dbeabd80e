// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StatePlaying is the normal mode where the board accepts moves.
	StatePlaying State = iota
	// StateTooSmall means the terminal cannot fit the board. Only resize and
	// quit are handled until it grows.
	StateTooSmall
	// StateGameOver means no move is left. The final board stays on screen.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateTooSmall:
		return "too_small"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
