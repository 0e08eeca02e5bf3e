package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/petal-labs/petalcalc/calc"
	"github.com/petal-labs/petalcalc/expr"
)

// MetricsHandler translates engine events into OpenTelemetry metrics.
// It records counters for evaluations and failures and a duration histogram.
type MetricsHandler struct {
	evalCount    metric.Int64Counter
	evalFailures metric.Int64Counter
	evalDuration metric.Float64Histogram
}

// NewMetricsHandler creates a MetricsHandler that uses the given meter to create
// instruments for recording evaluation metrics.
func NewMetricsHandler(meter metric.Meter) (*MetricsHandler, error) {
	count, err := meter.Int64Counter("petalcalc.eval.count",
		metric.WithDescription("Number of completed evaluations"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("petalcalc.eval.failures",
		metric.WithDescription("Number of failed evaluations"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("petalcalc.eval.duration",
		metric.WithDescription("Duration of evaluation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &MetricsHandler{
		evalCount:    count,
		evalFailures: failures,
		evalDuration: duration,
	}, nil
}

// Handle processes an engine event and records the appropriate metrics.
// It implements calc.EventHandler semantics.
func (h *MetricsHandler) Handle(e calc.Event) {
	switch e.Kind {
	case calc.EventEvalFinished:
		h.handleFinished(e)
	case calc.EventEvalFailed:
		h.handleFailed(e)
	}
}

func (h *MetricsHandler) handleFinished(e calc.Event) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("status", "ok"))
	h.evalCount.Add(ctx, 1, attrs)
	h.evalDuration.Record(ctx, e.Elapsed.Seconds(), attrs)
}

func (h *MetricsHandler) handleFailed(e calc.Event) {
	ctx := context.Background()
	h.evalCount.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
	h.evalFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("error_kind", errorKind(e)),
	))
	h.evalDuration.Record(ctx, e.Elapsed.Seconds(),
		metric.WithAttributes(attribute.String("status", "error")))
}

func errorKind(e calc.Event) string {
	if k, ok := e.Payload["error_kind"].(expr.ErrorKind); ok && k != "" {
		return string(k)
	}
	return "unknown"
}
