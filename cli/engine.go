package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"

	"github.com/petal-labs/petalcalc/calc"
	petalotel "github.com/petal-labs/petalcalc/otel"
)

const instrumentationName = "github.com/petal-labs/petalcalc"

// newLogger builds a text logger on the command's stderr. --verbose enables
// debug records and --quiet drops everything below error.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// newEngine wires an engine to the command's logger and to the global
// OpenTelemetry providers. The providers are no-ops unless an SDK has been
// installed by the embedding program.
func newEngine(cmd *cobra.Command) (*calc.Engine, error) {
	metrics, err := petalotel.NewMetricsHandler(otelapi.GetMeterProvider().Meter(instrumentationName))
	if err != nil {
		return nil, fmt.Errorf("initializing metrics: %w", err)
	}
	tracing := petalotel.NewTracingHandler(otelapi.GetTracerProvider().Tracer(instrumentationName))

	return calc.NewEngine(calc.Config{
		Logger:   newLogger(cmd),
		Handlers: []calc.EventHandler{metrics.Handle, tracing.Handle},
	}), nil
}
