package telemetry

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel"
)

// NewLogger returns a logger writing to the file at path. The terminal is
// owned by the game while it runs, so with an empty path logging is
// discarded. The returned closer must be called on exit.
//
// The logger is also installed as the OpenTelemetry internal logger.
func NewLogger(path string, verbosity int) (logr.Logger, io.Closer, error) {
	if path == "" {
		return logr.Discard(), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logr.Discard(), io.NopCloser(nil), fmt.Errorf("opening log file: %w", err)
	}

	logger := newStdLogger(f, verbosity)
	otel.SetLogger(logger)
	return logger, f, nil
}

func newStdLogger(w io.Writer, verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.NewWithOptions(log.New(w, "", log.LstdFlags|log.Lmicroseconds), stdr.Options{
		LogCaller: stdr.Error,
	}).WithName(serviceName)
}
