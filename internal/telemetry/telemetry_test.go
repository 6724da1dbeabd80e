package telemetry

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var errExport = errors.New("export failed")

type fakeProvider struct {
	flushFailures int
	flushCalls    int
	shutdownErr   error
	shutdownCalls int
}

func (p *fakeProvider) ForceFlush(context.Context) error {
	p.flushCalls++
	if p.flushCalls <= p.flushFailures {
		return errExport
	}
	return nil
}

func (p *fakeProvider) Shutdown(context.Context) error {
	p.shutdownCalls++
	return p.shutdownErr
}

func fastBackOff(t *testing.T) {
	t.Helper()
	prev := flushBackOff
	flushBackOff = func() backoff.BackOff {
		return backoff.NewConstantBackOff(time.Millisecond)
	}
	t.Cleanup(func() { flushBackOff = prev })
}

func TestShutdown(t *testing.T) {
	errClosed := errors.New("closed")

	tests := []struct {
		name        string
		provider    *fakeProvider
		wantFlushes int
		wantErrs    []error
		wantNoErr   bool
	}{
		{"clean", &fakeProvider{}, 1, nil, true},
		{"flush recovers", &fakeProvider{flushFailures: 2}, 3, nil, true},
		{"flush gives up", &fakeProvider{flushFailures: 10}, flushAttempts, []error{errExport}, false},
		{"shutdown fails", &fakeProvider{shutdownErr: errClosed}, 1, []error{errClosed}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fastBackOff(t)

			err := Shutdown(context.Background(), tt.provider)
			if tt.wantNoErr && err != nil {
				t.Errorf("Shutdown() error = %v, want nil", err)
			}
			for _, want := range tt.wantErrs {
				if !errors.Is(err, want) {
					t.Errorf("Shutdown() error = %v, want %v", err, want)
				}
			}
			if tt.provider.flushCalls != tt.wantFlushes {
				t.Errorf("ForceFlush calls = %d, want %d", tt.provider.flushCalls, tt.wantFlushes)
			}
			if tt.provider.shutdownCalls != 1 {
				t.Errorf("Shutdown calls = %d, want 1", tt.provider.shutdownCalls)
			}
		})
	}
}

func TestShutdownMeterProvider(t *testing.T) {
	fastBackOff(t)
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	if err := Shutdown(context.Background(), mp); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}

func TestTracerAndMeter(t *testing.T) {
	if Tracer("game") == nil {
		t.Error("Tracer() returned nil")
	}
	if NoopTracer() == nil {
		t.Error("NoopTracer() returned nil")
	}
	m := Meter("tui")
	if m == nil {
		t.Fatal("Meter() returned nil")
	}
	if _, err := m.Int64Counter("test.counter"); err != nil {
		t.Errorf("Int64Counter() error = %v", err)
	}
}

func TestNewLoggerDiscardsWithoutPath(t *testing.T) {
	logger, closer, err := NewLogger("", 0)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer closer.Close()
	if logger.Enabled() {
		t.Error("logger without a path is enabled, want discard")
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui48.log")
	logger, closer, err := NewLogger(path, 1)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("hello", "k", 1)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, _, err := NewLogger(filepath.Join(path, "missing", "x.log"), 0); err == nil {
		t.Error("NewLogger() with bad path error = nil, want error")
	}
}

func TestStdLoggerVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := newStdLogger(&buf, 1)

	logger.V(1).Info("shown")
	logger.V(2).Info("hidden")

	out := buf.String()
	if !strings.Contains(out, "shown") {
		t.Errorf("output %q missing V(1) message", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("output %q contains V(2) message", out)
	}
	if !strings.Contains(out, serviceName) {
		t.Errorf("output %q missing logger name %q", out, serviceName)
	}
}
