package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"lintnames/internal/diagfmt"
	"lintnames/internal/driver"
	"lintnames/internal/errs"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.ts",
		Short: "Dump the token stream of a TypeScript file",
		Long:  `Tokenize lexes one file the way the scanner does and prints every token with its leading trivia`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return errors.Wrap(err, "failed to get format flag")
	}
	if format != "pretty" && format != "json" {
		return errors.Newf("unknown format: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return errors.Wrap(err, "failed to get max-diagnostics flag")
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return errs.WithExitCode(errs.NewIOError("read", filePath, err), errs.ExitInternal)
	}

	// Диагностику лексера выводим в stderr
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		colored, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		result.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   colored,
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	}
	return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
}
