package calc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/petal-labs/petalcalc/expr"
)

// Config configures an Engine.
type Config struct {
	// Logger receives debug records for each evaluation.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Handlers receive the engine's events in order.
	Handlers []EventHandler
}

// Engine evaluates expressions and emits events around each evaluation.
// It holds no mutable state and may be shared between goroutines.
type Engine struct {
	logger *slog.Logger
	emit   EventHandler
}

// Result is the outcome of a successful evaluation.
type Result struct {
	ID         string
	Expression string
	Value      int64
	Tree       expr.Expr
	Elapsed    time.Duration
}

// NewEngine creates an Engine from cfg.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger: logger,
		emit:   MultiEventHandler(cfg.Handlers...),
	}
}

// Evaluate parses and evaluates expression. The context is only consulted
// before work starts; evaluation itself never blocks.
func (e *Engine) Evaluate(ctx context.Context, expression string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	id := uuid.NewString()
	start := time.Now()
	e.emit(NewEvent(EventEvalStarted, id, expression))

	tree, err := expr.Parse(expression)
	var value int64
	if err == nil {
		value, err = expr.Eval(tree)
	}
	elapsed := time.Since(start)

	if err != nil {
		kind := expr.KindOf(err)
		e.logger.Debug("evaluation failed",
			"eval_id", id,
			"expression", expression,
			"error_kind", string(kind),
			"error", err,
		)
		e.emit(NewEvent(EventEvalFailed, id, expression).
			WithElapsed(elapsed).
			WithPayload("error", err.Error()).
			WithPayload("error_kind", kind))
		return Result{}, err
	}

	e.logger.Debug("evaluation finished",
		"eval_id", id,
		"expression", expression,
		"result", value,
		"elapsed", elapsed,
	)
	e.emit(NewEvent(EventEvalFinished, id, expression).
		WithElapsed(elapsed).
		WithPayload("result", value))

	return Result{
		ID:         id,
		Expression: expression,
		Value:      value,
		Tree:       tree,
		Elapsed:    elapsed,
	}, nil
}
