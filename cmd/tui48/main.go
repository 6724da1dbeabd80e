// Package main is the entry point for tui48.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/tui48/internal/game"
	"github.com/samdwyer/tui48/internal/telemetry"
	"github.com/samdwyer/tui48/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui48: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file for local development. Not fatal: env vars might be set
	// directly.
	envErr := godotenv.Load()

	cfg := game.LoadConfig()

	logger, closer, err := telemetry.NewLogger(cfg.LogFile, cfg.LogVerbosity)
	if err != nil {
		return err
	}
	defer closer.Close()
	tui.SetLogger(logger.WithName("tui"))

	if envErr != nil {
		logger.V(1).Info(".env file not loaded", "error", envErr.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Set up OTEL environment variables from our .env variables
	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Continue without telemetry - game still works
			logger.Error(err, "telemetry setup failed, running without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error(err, "shutting down telemetry")
				}
			}()
		}
	} else {
		logger.V(1).Info("no honeycomb api key, telemetry disabled")
	}

	logger.Info("starting", "seed", cfg.Seed, "theme", cfg.Theme, "depth", cfg.Depth,
		"frameDelay", cfg.FrameDelay.String(), "redrawEntire", cfg.RedrawEntire)

	g, err := game.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing game: %w", err)
	}
	if err := g.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("game error: %w", err)
	}

	logger.Info("finished", "score", g.Score(), "state", g.State().String())
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// It returns false when no API key is configured.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_TUI48_API_KEY")
	if apiKey == "" {
		return false
	}

	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	dataset := os.Getenv("HONEYCOMB_TUI48_DATASET")
	if dataset == "" {
		dataset = "tui48" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
