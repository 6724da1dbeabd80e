package game

import (
	"os"
	"strconv"
	"time"

	"github.com/samdwyer/tui48/internal/tui"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible games.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Depth is the number of layers in every canvas stack.
	Depth int

	// FrameDelay is the pause between two animation frames. Zero renders
	// frames back to back.
	FrameDelay time.Duration

	// RedrawEntire skips the slide animation and rebuilds the board after
	// every move.
	RedrawEntire bool

	// Theme is a theme id from themes.json, "random", or empty for the default.
	Theme string

	// LogFile receives diagnostics. Empty disables logging.
	LogFile string

	// LogVerbosity is the highest logr V-level written to LogFile.
	LogVerbosity int
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	return Config{
		Depth:      tui.DefaultDepth,
		FrameDelay: 50 * time.Millisecond,
	}
}

// LoadConfig reads the configuration from TUI48_* environment variables.
// Unparseable values are ignored and keep their defaults.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TUI48_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}

	// The layout needs layers up to the message layer.
	if v := os.Getenv("TUI48_DEPTH"); v != "" {
		if depth, err := strconv.Atoi(v); err == nil && depth > messageLayer {
			cfg.Depth = depth
		}
	}

	// Accepts a duration ("20ms") or a bare number of milliseconds.
	if v := os.Getenv("TUI48_FRAME_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.FrameDelay = d
		} else if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.FrameDelay = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("TUI48_REDRAW_ENTIRE"); v != "" {
		if redraw, err := strconv.ParseBool(v); err == nil {
			cfg.RedrawEntire = redraw
		}
	}

	cfg.Theme = os.Getenv("TUI48_THEME")
	cfg.LogFile = os.Getenv("TUI48_LOG_FILE")

	if v := os.Getenv("TUI48_LOG_VERBOSITY"); v != "" {
		if verbosity, err := strconv.Atoi(v); err == nil && verbosity >= 0 {
			cfg.LogVerbosity = verbosity
		}
	}

	return cfg
}
