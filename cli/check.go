package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/petal-labs/petalcalc/calc"
	"github.com/petal-labs/petalcalc/expr"
)

// NewCheckCmd creates the "check" subcommand.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Run a YAML or JSON table of expression cases",
		Long: "Each case names an expression and either the expected result or the\n" +
			"expected error kind (malformed | division_by_zero):\n\n" +
			"  cases:\n" +
			"    - expr: 2+3*4\n" +
			"      want: 14\n" +
			"    - expr: 5/0\n" +
			"      error: division_by_zero",
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
}

// caseFile is the document read by check. JSON is accepted since it is
// valid YAML.
type caseFile struct {
	Cases []checkCase `yaml:"cases"`
}

type checkCase struct {
	Name  string `yaml:"name"`
	Expr  string `yaml:"expr"`
	Want  *int64 `yaml:"want"`
	Error string `yaml:"error"`
}

func (c checkCase) label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Expr
}

func runCheck(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitFileNotFound, "file not found: %s", filePath)
		}
		return fmt.Errorf("reading file: %w", err)
	}

	cases, err := loadCases(data)
	if err != nil {
		return exitError(exitInputParse, "parsing %s: %v", filePath, err)
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, c := range cases {
		if reason := runCase(cmd, engine, c); reason != "" {
			failed++
			fmt.Fprintf(out, "FAIL %s: %s\n", c.label(), reason)
			continue
		}
		fmt.Fprintf(out, "PASS %s\n", c.label())
	}

	printCheckSummary(out, len(cases)-failed, failed)
	if failed > 0 {
		return exitError(exitValidation, "%d %s failed", failed, pluralize("case", failed))
	}
	return nil
}

func loadCases(data []byte) ([]checkCase, error) {
	var f caseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Cases) == 0 {
		return nil, errors.New("no cases defined")
	}
	for i, c := range f.Cases {
		if c.Expr == "" {
			return nil, fmt.Errorf("case %d: expr is required", i)
		}
		if (c.Want == nil) == (c.Error == "") {
			return nil, fmt.Errorf("case %d (%s): exactly one of want or error is required", i, c.label())
		}
		switch expr.ErrorKind(c.Error) {
		case "", expr.KindMalformed, expr.KindDivisionByZero:
		default:
			return nil, fmt.Errorf("case %d (%s): unknown error kind %q", i, c.label(), c.Error)
		}
	}
	return f.Cases, nil
}

// runCase returns an empty string when c passes, or the failure reason.
func runCase(cmd *cobra.Command, engine *calc.Engine, c checkCase) string {
	res, err := engine.Evaluate(cmd.Context(), c.Expr)
	if c.Want != nil {
		if err != nil {
			return fmt.Sprintf("want %d, got error: %v", *c.Want, err)
		}
		if res.Value != *c.Want {
			return fmt.Sprintf("want %d, got %d", *c.Want, res.Value)
		}
		return ""
	}

	if err == nil {
		return fmt.Sprintf("want %s error, got %d", c.Error, res.Value)
	}
	if kind := expr.KindOf(err); kind != expr.ErrorKind(c.Error) {
		return fmt.Sprintf("want %s error, got %s: %v", c.Error, kind, err)
	}
	return ""
}

func printCheckSummary(w io.Writer, passed, failed int) {
	fmt.Fprintf(w, "\n%d passed, %d failed\n", passed, failed)
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
