package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/petalcalc/expr"
)

// NewTokensCmd creates the "tokens" subcommand.
func NewTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens <expression>",
		Short: "Print the token sequence of an expression",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokens,
	}

	cmd.Flags().String("format", "text", "Output format: text | json")
	cmd.Flags().Bool("raw", false, "Split on operators and parentheses without validating")

	return cmd
}

type tokenOutput struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Pos   int    `json:"pos"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	raw, _ := cmd.Flags().GetBool("raw")
	if format != "text" && format != "json" {
		return exitError(exitInputParse, "unknown format %q", format)
	}
	out := cmd.OutOrStdout()

	if raw {
		pieces := expr.Split(args[0])
		if format == "json" {
			if pieces == nil {
				pieces = []string{}
			}
			return json.NewEncoder(out).Encode(pieces)
		}
		for _, p := range pieces {
			fmt.Fprintln(out, p)
		}
		return nil
	}

	tokens, err := expr.Lex(args[0])
	if err != nil {
		return evalExitError(args[0], err)
	}

	// Output an empty array rather than null when there are no tokens.
	list := make([]tokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == expr.TokenEOF {
			break
		}
		list = append(list, tokenOutput{Kind: tok.Kind.String(), Value: tok.Value, Pos: tok.Pos})
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	for _, tok := range list {
		fmt.Fprintf(out, "%-4d %-6s %s\n", tok.Pos, tok.Kind, tok.Value)
	}
	return nil
}
