package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"lintnames/internal/config"
	"lintnames/internal/driver"
	"lintnames/internal/errs"
	"lintnames/internal/rules"
	"lintnames/internal/source"
)

func newDeclarationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "declarations",
		Short: "List interface and type alias declarations under --root",
		Long: `Declarations walks the tree one file at a time and prints every interface
and type alias with the rules it breaks and the name a fix would give it.
Unreadable or unparsable files are reported on stderr and skipped.`,
		Args: cobra.NoArgs,
		RunE: runDeclarations,
	}
	cmd.Flags().String("root", ".", "directory (or single file) to scan")
	cmd.Flags().String("config", "", "path to .lintnames.toml (default: nearest above --root)")
	cmd.Flags().Bool("violations", false, "only list declarations that break a rule")
	return cmd
}

func runDeclarations(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	root, _ := flags.GetString("root")
	configPath, _ := flags.GetString("config")
	onlyViolations, _ := flags.GetBool("violations")

	cfg, err := config.Resolve(configPath, root)
	if err != nil {
		return errs.WithExitCode(errors.Wrap(err, "config"), errs.ExitInternal)
	}
	engine, err := rules.NewEngine(rules.Options{Disabled: cfg.Rules.Disabled, Allow: cfg.Rules.Allow})
	if err != nil {
		return errs.WithExitCode(err, errs.ExitInternal)
	}

	base := root
	if info, statErr := os.Stat(root); statErr == nil && !info.IsDir() {
		base = filepath.Dir(root)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LOCATION\tKIND\tNAME\tREFS\tRULES\tSUGGESTED")
	skipped := 0
	for d, err := range driver.Declarations(ctx, root, driver.OptionsFromConfig(cfg)) {
		if err != nil {
			if errs.IsFatal(err) || errors.Is(err, context.Canceled) {
				return err
			}
			skipped++
			fmt.Fprintf(cmd.ErrOrStderr(), "lint-names: %v\n", err)
			continue
		}
		violations := engine.Evaluate(d)
		if onlyViolations && len(violations) == 0 {
			continue
		}
		ids := make([]string, 0, len(violations))
		for _, v := range violations {
			ids = append(ids, v.Rule.ID)
		}
		ruleCol, suggested := "-", "-"
		if len(violations) > 0 {
			ruleCol = strings.Join(ids, ",")
			if violations[0].Fixable() {
				suggested = violations[0].Suggested
			}
		}
		path, relErr := source.RelativePath(d.Site.Path, base)
		if relErr != nil {
			path = d.Site.Path
		}
		fmt.Fprintf(tw, "%s:%d:%d\t%s\t%s\t%d\t%s\t%s\n",
			path, d.Site.Start.Line, d.Site.Start.Col, d.Kind, d.Name, len(d.References), ruleCol, suggested)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "lint-names: skipped %d file(s)\n", skipped)
	}
	return nil
}
