package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/petalcalc/expr"
)

// NewTreeCmd creates the "tree" subcommand.
func NewTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <expression>",
		Short: "Print the parsed expression tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runTree,
	}
}

func runTree(cmd *cobra.Command, args []string) error {
	ast, err := expr.Parse(args[0])
	if err != nil {
		return evalExitError(args[0], err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Expression: %s\n", ast)
	fmt.Fprint(out, expr.Outline(ast))
	return nil
}
