package tui

import (
	"sync/atomic"

	"github.com/go-logr/logr"
)

// loggerPtr stores the package logger. Accessed atomically so SetLogger can be
// called while canvases are in use.
var loggerPtr atomic.Pointer[logr.Logger]

func init() {
	l := logr.Discard()
	loggerPtr.Store(&l)
}

// SetLogger configures the logger used by canvases created without WithLogger.
// By default nothing is logged.
//
// Verbosity levels used by tui:
//   - V(0): invariant violations (queue overflow, failed swaps during translate)
//   - V(1): canvas lifecycle (creation, layer allocation)
//   - V(2): per-operation diagnostics (allocations, reclaim counts)
func SetLogger(l logr.Logger) {
	loggerPtr.Store(&l)
}

// Logger returns the current package logger.
func Logger() logr.Logger {
	return *loggerPtr.Load()
}
