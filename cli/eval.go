package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// DemoExpression is evaluated when eval is run without arguments.
const DemoExpression = "((9-5)-(5+3))*(8-2)"

// NewEvalCmd creates the "eval" subcommand.
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: "Evaluate one or more integer arithmetic expressions using + - * / and parentheses.\n" +
			"With no arguments the demo expression " + DemoExpression + " is evaluated.",
		RunE: runEval,
	}

	cmd.Flags().String("format", "text", "Output format: text | json")

	return cmd
}

type evalOutput struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
	Result     int64  `json:"result"`
}

func runEval(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return exitError(exitInputParse, "unknown format %q", format)
	}
	if len(args) == 0 {
		args = []string{DemoExpression}
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	results := make([]evalOutput, 0, len(args))
	for _, expression := range args {
		res, err := engine.Evaluate(cmd.Context(), expression)
		if err != nil {
			return evalExitError(expression, err)
		}
		if format == "text" {
			fmt.Fprintf(out, "Result: %d\n", res.Value)
			continue
		}
		results = append(results, evalOutput{
			ID:         res.ID,
			Expression: res.Expression,
			Result:     res.Value,
		})
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return nil
}
