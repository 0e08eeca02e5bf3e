// Package otel provides OpenTelemetry integration for calculator engine events.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/petalcalc/calc"
)

// TracingHandler translates engine events into OpenTelemetry spans, one span
// per evaluation.
type TracingHandler struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span // evalID -> span
}

// NewTracingHandler creates a new TracingHandler that uses the given tracer
// to create spans from engine events.
func NewTracingHandler(tracer trace.Tracer) *TracingHandler {
	return &TracingHandler{
		tracer: tracer,
		spans:  make(map[string]trace.Span),
	}
}

// Handle processes an engine event and creates or ends spans accordingly.
// It implements calc.EventHandler semantics.
func (h *TracingHandler) Handle(e calc.Event) {
	switch e.Kind {
	case calc.EventEvalStarted:
		h.handleStarted(e)
	case calc.EventEvalFinished:
		h.handleFinished(e)
	case calc.EventEvalFailed:
		h.handleFailed(e)
	}
}

func (h *TracingHandler) handleStarted(e calc.Event) {
	_, span := h.tracer.Start(context.Background(), "eval",
		trace.WithAttributes(
			attribute.String("petalcalc.eval_id", e.EvalID),
			attribute.String("petalcalc.expression", e.Expression),
		),
		trace.WithTimestamp(e.Time),
	)

	h.mu.Lock()
	h.spans[e.EvalID] = span
	h.mu.Unlock()
}

func (h *TracingHandler) handleFinished(e calc.Event) {
	span, ok := h.take(e.EvalID)
	if !ok {
		return
	}
	if v, found := e.Payload["result"].(int64); found {
		span.SetAttributes(attribute.Int64("petalcalc.result", v))
	}
	span.SetAttributes(attribute.String("petalcalc.duration", e.Elapsed.String()))
	span.SetStatus(codes.Ok, "")
	span.End(trace.WithTimestamp(e.Time))
}

func (h *TracingHandler) handleFailed(e calc.Event) {
	span, ok := h.take(e.EvalID)
	if !ok {
		return
	}
	errMsg := "unknown error"
	if s, found := e.Payload["error"].(string); found {
		errMsg = s
	}
	span.SetAttributes(attribute.String("petalcalc.error_kind", errorKind(e)))
	span.SetStatus(codes.Error, errMsg)
	span.RecordError(spanError(errMsg), trace.WithTimestamp(e.Time))
	span.End(trace.WithTimestamp(e.Time))
}

func (h *TracingHandler) take(evalID string) (trace.Span, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	span, ok := h.spans[evalID]
	if ok {
		delete(h.spans, evalID)
	}
	return span, ok
}

// spanError is a simple error type for recording span errors.
type spanError string

func (e spanError) Error() string { return string(e) }
