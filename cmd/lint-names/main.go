package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lintnames/internal/errs"
	"lintnames/internal/version"
)

// newRootCmd builds the command tree. Tests build a fresh tree per run so
// flag values never leak between executions.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lint-names",
		Short: "Enforce TypeScript type naming: no I/T prefixes, no Dto suffix",
		Long: `lint-names scans a TypeScript tree for interface and type alias names
that start with I or T followed by an upper-case letter, or end with Dto.
With --fix it renames each offending declaration together with every
reference to it, or reports why it could not.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLint,
	}
	rootCmd.Version = version.Version

	flags := rootCmd.Flags()
	flags.Bool("fix", false, "rename offending identifiers in place")
	flags.Bool("diff", false, "print the renames as a unified diff without writing")
	flags.String("root", ".", "directory (or single file) to scan")
	flags.Bool("ci", false, "enforcement mode: parse, read and write errors fail the run, no TUI, no colors")
	flags.String("report", "", "write the JSON report to this file")
	flags.String("format", "", "output format (pretty|short|json|sarif)")
	flags.String("config", "", "path to .lintnames.toml (default: nearest above --root)")
	flags.Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	flags.Bool("cache", false, "reuse per-file scan facts from the user cache directory")
	flags.String("ui", "auto", "progress view (auto|on|off)")
	flags.String("path-mode", "relative", "paths in diagnostics (auto|absolute|relative|basename)")
	flags.Bool("show-fixes", false, "list the edits of each suggested rename (pretty format)")
	flags.Bool("show-preview", false, "show before/after lines for each rename edit (implies --show-fixes)")

	// Глобальные флаги
	pflags := rootCmd.PersistentFlags()
	pflags.String("color", "auto", "colorize output (auto|on|off)")
	pflags.Bool("timings", false, "show timing information")
	pflags.Int("max-diagnostics", 0, "maximum number of diagnostics to keep (0 = unlimited)")
	pflags.String("trace", "", "write a trace to this file (- for stderr; .ndjson and .json pick the format)")
	pflags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pflags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pflags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pflags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	pflags.String("cpu-profile", "", "write a CPU profile to this file")
	pflags.String("mem-profile", "", "write a heap profile to this file on exit")
	pflags.String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newDeclarationsCmd())
	return rootCmd
}

// main runs the root command and maps its error to the exit code:
// 0 clean, 1 violations or gate failure, 2 internal error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	code := errs.ExitCode(err)
	if err != nil {
		printError(os.Stderr, err)
	}
	os.Exit(code)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "lint-names: %v\n", err)
	for _, hint := range errs.Hints(err) {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
	if errs.ExitCode(err) == errs.ExitInternal && os.Getenv("LINTNAMES_DEBUG") != "" {
		fmt.Fprintf(w, "%+v\n", err)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	}
	return false, errors.Newf("invalid --color value %q (expected auto|on|off)", value)
}
