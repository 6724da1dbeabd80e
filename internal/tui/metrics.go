package tui

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// canvasMetrics holds the counters recorded by a canvas.
type canvasMetrics struct {
	allocated metric.Int64Counter
	reclaimed metric.Int64Counter
	swaps     metric.Int64Counter
	overflow  metric.Int64Counter
	attrs     metric.MeasurementOption
}

func newCanvasMetrics(meter metric.Meter, canvasID string, log logr.Logger) *canvasMetrics {
	m := &canvasMetrics{
		attrs: metric.WithAttributes(attribute.String("canvas.id", canvasID)),
	}
	m.allocated = counter(meter, log, "tui.cells.allocated", "Cells handed out to draw buffers")
	m.reclaimed = counter(meter, log, "tui.cells.reclaimed", "Released cells returned to empty")
	m.swaps = counter(meter, log, "tui.swaps", "Pairwise cell swaps")
	m.overflow = counter(meter, log, "tui.changed.overflow", "Changed queue overflows forcing a full redraw")
	return m
}

func counter(meter metric.Meter, log logr.Logger, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("{cell}"))
	if err != nil {
		log.Error(err, "creating counter, falling back to noop", "name", name)
		return noop.Int64Counter{}
	}
	return c
}

func (m *canvasMetrics) add(c metric.Int64Counter, n int) {
	if n == 0 {
		return
	}
	c.Add(context.Background(), int64(n), m.attrs)
}
