// Package calc runs arithmetic expressions through the expr pipeline and
// reports each evaluation as a sequence of events.
package calc

import "time"

// EventKind identifies the type of event emitted by the engine.
type EventKind string

const (
	// EventEvalStarted is emitted before an expression is tokenized.
	EventEvalStarted EventKind = "eval.started"

	// EventEvalFinished is emitted when an expression produced a value.
	// Payload key "result" holds the int64 value.
	EventEvalFinished EventKind = "eval.finished"

	// EventEvalFailed is emitted when tokenizing, parsing or evaluation
	// failed. Payload keys "error" (string) and "error_kind" (expr.ErrorKind).
	EventEvalFailed EventKind = "eval.failed"
)

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	return string(k)
}

// Event is a record of one step in the life of an evaluation.
type Event struct {
	// Kind identifies the event type.
	Kind EventKind

	// EvalID is the unique identifier for the evaluation.
	EvalID string

	// Expression is the source text being evaluated.
	Expression string

	// Time is when the event occurred.
	Time time.Time

	// Elapsed is the duration since the evaluation started.
	Elapsed time.Duration

	// Payload contains event-specific data.
	Payload map[string]any
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(kind EventKind, evalID, expression string) Event {
	return Event{
		Kind:       kind,
		EvalID:     evalID,
		Expression: expression,
		Time:       time.Now(),
		Payload:    make(map[string]any),
	}
}

// WithElapsed sets the elapsed duration on the event.
func (e Event) WithElapsed(elapsed time.Duration) Event {
	e.Elapsed = elapsed
	return e
}

// WithPayload adds a key-value pair to the event payload.
func (e Event) WithPayload(key string, value any) Event {
	if e.Payload == nil {
		e.Payload = make(map[string]any)
	}
	e.Payload[key] = value
	return e
}

// EventHandler is a function type for handling events.
type EventHandler func(Event)

// MultiEventHandler combines multiple handlers into one.
func MultiEventHandler(handlers ...EventHandler) EventHandler {
	return func(e Event) {
		for _, h := range handlers {
			if h != nil {
				h(e)
			}
		}
	}
}
