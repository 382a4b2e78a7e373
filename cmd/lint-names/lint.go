package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"lintnames/internal/config"
	"lintnames/internal/diagfmt"
	"lintnames/internal/driver"
	"lintnames/internal/errs"
	"lintnames/internal/observ"
	"lintnames/internal/pipeline"
	"lintnames/internal/report"
	"lintnames/internal/rules"
	"lintnames/internal/version"
)

// lintOptions is the merged view of flags and .lintnames.toml.
type lintOptions struct {
	root       string
	cfg        config.Config
	mode       report.Mode
	ci         bool
	format     string
	reportPath string
	ui         uiMode
	color      bool
	timings    bool
	pathMode   diagfmt.PathMode
	showFixes  bool
	preview    bool
	maxDiag    int
}

func readLintOptions(cmd *cobra.Command) (*lintOptions, error) {
	flags := cmd.Flags()
	o := &lintOptions{}
	var err error

	if o.root, err = flags.GetString("root"); err != nil {
		return nil, err
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if o.cfg, err = config.Resolve(configPath, o.root); err != nil {
		return nil, errs.WithExitCode(errors.Wrap(err, "config"), errs.ExitInternal)
	}

	fix, _ := flags.GetBool("fix")
	diff, _ := flags.GetBool("diff")
	switch {
	case diff:
		o.mode = report.ModeDiff
	case fix:
		o.mode = report.ModeFix
	default:
		o.mode = report.ModeCheck
	}
	o.ci, _ = flags.GetBool("ci")
	o.timings, _ = cmd.Root().PersistentFlags().GetBool("timings")
	o.maxDiag, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	o.showFixes, _ = flags.GetBool("show-fixes")
	o.preview, _ = flags.GetBool("show-preview")
	if o.preview {
		o.showFixes = true
	}
	pathMode, _ := flags.GetString("path-mode")
	o.pathMode = diagfmt.ParsePathMode(pathMode)

	// флаги перекрывают файл
	if flags.Changed("format") {
		o.cfg.Report.Format, _ = flags.GetString("format")
	}
	if flags.Changed("report") {
		o.cfg.Report.JSON, _ = flags.GetString("report")
	}
	if flags.Changed("jobs") {
		o.cfg.Scan.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("cache") {
		o.cfg.Scan.Cache, _ = flags.GetBool("cache")
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, errs.WithExitCode(err, errs.ExitInternal)
	}
	o.format = o.cfg.Report.Format
	if o.format == "" {
		o.format = "pretty"
	}
	o.reportPath = o.cfg.Report.JSON

	uiValue, _ := flags.GetString("ui")
	if o.ui, err = readUIMode(uiValue); err != nil {
		return nil, errs.WithExitCode(err, errs.ExitInternal)
	}
	if o.color, err = useColor(cmd, os.Stdout); err != nil {
		return nil, errs.WithExitCode(err, errs.ExitInternal)
	}
	if o.ci {
		o.ui = uiModeOff
		o.color = false
	}
	// машинные форматы не смешиваем с TUI
	if o.format == "json" || o.format == "sarif" {
		o.ui = uiModeOff
	}
	return o, nil
}

func (o *lintOptions) request(cmd *cobra.Command) *pipeline.Request {
	scan := driver.OptionsFromConfig(o.cfg)
	scan.MaxDiagnostics = o.maxDiag
	if o.cfg.Scan.Cache {
		cache, err := driver.OpenDiskCache("lint-names")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "lint-names: cache disabled: %v\n", err)
		} else {
			scan.Cache = cache
		}
	}
	return &pipeline.Request{
		Root:       o.root,
		Scan:       scan,
		Rules:      rules.Options{Disabled: o.cfg.Rules.Disabled, Allow: o.cfg.Rules.Allow},
		Mode:       o.mode,
		CI:         o.ci,
		ReportPath: o.reportPath,
	}
}

func runLint(cmd *cobra.Command, _ []string) (err error) {
	opts, err := readLintOptions(cmd)
	if err != nil {
		return err
	}
	tr, err := setupTracing(cmd)
	if err != nil {
		return errs.WithExitCode(err, errs.ExitInternal)
	}
	defer func() { tr.close(errs.ExitCode(err) == errs.ExitInternal) }()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return errs.WithExitCode(err, errs.ExitInternal)
	}
	defer stopProfiling()

	timer := observ.NewTimer()
	req := opts.request(cmd)
	req.Timer = timer

	var res *pipeline.Result
	if shouldUseTUI(opts.ui) {
		res, err = runWithUI(cmd.Context(), req, cmd.ErrOrStderr())
	} else {
		res, err = pipeline.Run(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := render(out, cmd.ErrOrStderr(), opts, res, os.Args[1:]); err != nil {
		return errs.WithExitCode(err, errs.ExitInternal)
	}
	if opts.timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	return res.Summary.Gate()
}

func render(out, errOut io.Writer, o *lintOptions, res *pipeline.Result, args []string) error {
	fs := res.Scan.FileSet
	switch o.format {
	case "json":
		if err := diagfmt.JSON(out, res.Bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			IncludeNotes:     true,
			IncludeFixes:     true,
			IncludePreviews:  o.preview,
		}); err != nil {
			return err
		}
	case "sarif":
		if err := diagfmt.Sarif(out, res.Bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "lint-names",
			ToolVersion:    version.Version,
			InvocationArgs: args,
			PathMode:       o.pathMode,
		}); err != nil {
			return err
		}
	case "short":
		if err := diagfmt.Short(out, res.Bag, fs, false); err != nil {
			return err
		}
	default:
		diagfmt.Pretty(out, res.Bag, fs, diagfmt.PrettyOpts{
			Color:       o.color,
			Context:     0,
			PathMode:    o.pathMode,
			ShowNotes:   true,
			ShowFixes:   o.showFixes,
			ShowPreview: o.preview,
		})
		if res.Bag.Len() > 0 {
			fmt.Fprintln(out)
		}
	}

	human := !slices.Contains([]string{"json", "sarif"}, o.format)
	if res.Fix != nil && res.Fix.Diff != "" {
		w := out
		if !human {
			w = errOut
		}
		fmt.Fprint(w, res.Fix.Diff)
		if !strings.HasSuffix(res.Fix.Diff, "\n") {
			fmt.Fprintln(w)
		}
	}
	if human {
		report.Print(out, res.Summary, o.color)
	} else {
		report.Print(errOut, res.Summary, false)
	}
	return nil
}
