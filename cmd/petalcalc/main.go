package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/petal-labs/petalcalc/cli"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "petalcalc",
	Short: "Integer arithmetic expression calculator",
	Long:  "petalcalc tokenizes, parses and evaluates integer arithmetic expressions with + - * / and parentheses.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "", false, "Suppress all output except errors")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("petalcalc version %s\n", version))

	rootCmd.AddCommand(cli.NewEvalCmd())
	rootCmd.AddCommand(cli.NewTokensCmd())
	rootCmd.AddCommand(cli.NewTreeCmd())
	rootCmd.AddCommand(cli.NewCheckCmd())
}
