// Package pipeline drives one lint-names run through its stages:
// scan, evaluate, rewrite (fix and diff modes only) and report.
package pipeline

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"lintnames/internal/diag"
	"lintnames/internal/driver"
	"lintnames/internal/errs"
	"lintnames/internal/fix"
	"lintnames/internal/observ"
	"lintnames/internal/report"
	"lintnames/internal/rules"
	"lintnames/internal/trace"
)

// Request configures one run.
type Request struct {
	Root  string
	Scan  driver.Options
	Rules rules.Options
	Mode  report.Mode
	// CI turns parse, read and write errors into gate failures.
	CI bool
	// ReportPath, if set, receives the JSON report.
	ReportPath string
	Progress   ProgressSink
	// Timer may be nil.
	Timer *observ.Timer
}

// Result carries everything a run produced, also when Run fails midway.
type Result struct {
	State      State
	Scan       *driver.ScanResult
	Index      *driver.Index
	Violations []rules.Violation
	Plan       *fix.Plan
	Fix        *fix.Result
	// Bag holds scan, rule and conflict diagnostics, sorted.
	Bag     *diag.Bag
	Summary *report.Summary
	Timings Timings
}

// ExitCode maps the finished run to the process exit code.
func (r *Result) ExitCode() int {
	if r == nil || r.Summary == nil {
		return errs.ExitInternal
	}
	return r.Summary.ExitCode()
}

// Run executes the pipeline. A returned error is fatal (unreadable root,
// bad rule options, cancellation, unwritable report file); everything
// per-file ends up in the Result.
func Run(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, errors.New("missing run request")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	timer := req.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	res := &Result{State: StateIdle}

	engine, err := rules.NewEngine(req.Rules)
	if err != nil {
		return res, errs.WithExitCode(err, errs.ExitInternal)
	}

	ctx, runSpan := trace.Start(ctx, trace.ScopeRun, "lint-names")
	runSpan.WithExtra("mode", req.Mode.String()).WithExtra("root", req.Root)
	defer func() { runSpan.End(res.State.String()) }()

	// Scanning
	res.State = StateScanning
	scanOpts := req.Scan
	scanOpts.OnFile = fileObserver(req.Scan.OnFile, req.Progress)
	err = res.phase(ctx, timer, req.Progress, StageScan, func(ctx context.Context) (string, error) {
		sr, err := driver.Scan(ctx, req.Root, scanOpts)
		res.Scan = sr
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d files, %d cached", len(sr.Files), sr.Cached()), nil
	})
	if err != nil {
		return res, err
	}

	// Evaluating
	res.State = StateEvaluating
	res.Bag = diag.NewBag(req.Scan.MaxDiagnostics)
	res.Bag.Merge(res.Scan.Bag)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	_ = res.phase(ctx, timer, req.Progress, StageEvaluate, func(context.Context) (string, error) {
		res.Index = driver.BuildIndex(res.Scan)
		res.Violations = engine.EvaluateAll(res.Index.Declarations)
		reportViolations(rep, res.Violations)
		return fmt.Sprintf("%d declarations, %d violations, %d repeated", len(res.Index.Declarations), len(res.Violations), rep.Suppressed()), nil
	})

	// Rewriting
	if req.Mode != report.ModeCheck {
		res.State = StateRewriting
		err = res.phase(ctx, timer, req.Progress, StageRewrite, func(ctx context.Context) (string, error) {
			res.Plan = fix.PlanRenames(res.Index, res.Violations)
			mode := fix.ModeWrite
			if req.Mode == report.ModeDiff {
				mode = fix.ModeDiff
			}
			fr, err := fix.Apply(ctx, res.Scan.FileSet, res.Plan, fix.Options{Mode: mode, Jobs: req.Scan.Jobs})
			res.Fix = fr
			if err != nil {
				return "", err
			}
			reportRenames(rep, fr, mode == fix.ModeDiff)
			return fmt.Sprintf("%d renames, %d conflicts, %d write errors", len(fr.Applied), len(fr.Conflicts), len(fr.WriteErrors)), nil
		})
		if err != nil {
			return res, err
		}
	}

	// Reporting
	res.State = StateReporting
	err = res.phase(ctx, timer, req.Progress, StageReport, func(context.Context) (string, error) {
		res.Bag.Sort()
		res.Summary = report.Build(report.Input{
			Root:         req.Root,
			Mode:         req.Mode,
			CI:           req.CI,
			FilesScanned: len(res.Scan.Files),
			CacheHits:    res.Scan.Cached(),
			Violations:   res.Violations,
			ParseErrors:  res.Scan.ParseErrors(),
			IOErrors:     res.Scan.IOErrors(),
			Fix:          res.Fix,
		})
		if req.ReportPath != "" {
			if err := report.WriteFile(req.ReportPath, res.Summary.Entries); err != nil {
				return "", errs.WithExitCode(err, errs.ExitInternal)
			}
		}
		return fmt.Sprintf("exit %d", res.Summary.ExitCode()), nil
	})
	if err != nil {
		return res, err
	}

	res.State = StateDone
	return res, nil
}

// phase wraps one stage in a trace span, a timer phase and progress events.
func (r *Result) phase(ctx context.Context, timer *observ.Timer, sink ProgressSink, stage Stage, fn func(context.Context) (string, error)) error {
	emitStage(sink, stage, StatusWorking, nil)
	ctx, span := trace.Start(ctx, trace.ScopePhase, string(stage))
	idx := timer.Begin(string(stage))

	note, err := fn(ctx)
	if err != nil {
		note = err.Error()
	}
	dur := timer.End(idx, note)
	span.End(note)
	r.Timings.Set(stage, dur)

	if sink != nil {
		status := StatusDone
		if err != nil {
			status = StatusError
		}
		sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: dur})
	}
	return err
}

func fileObserver(next driver.FileObserver, sink ProgressSink) driver.FileObserver {
	if sink == nil {
		return next
	}
	return func(ev driver.FileEvent) {
		if next != nil {
			next(ev)
		}
		status := StatusDone
		if ev.Failed {
			status = StatusError
		}
		sink.OnEvent(Event{
			File:   ev.Path,
			Stage:  StageScan,
			Status: status,
			Done:   ev.Done,
			Total:  ev.Total,
			Cached: ev.Cached,
		})
	}
}

// reportViolations emits one diagnostic per violation. A declaration seen
// twice (the same file reached through two paths) is reported once.
func reportViolations(r diag.Reporter, violations []rules.Violation) {
	for _, v := range violations {
		rules.Report(r, v)
	}
}

// reportRenames turns every rename that did not happen into a warning at its
// declaration and notes every applied one.
func reportRenames(r diag.Reporter, fr *fix.Result, diffOnly bool) {
	for _, c := range fr.Conflicts {
		if c.Decl == nil {
			continue
		}
		msg := fmt.Sprintf("%s not renamed to %s", c.Original, c.Target)
		if c.Err != nil {
			msg = c.Err.Error()
		}
		diag.ReportWarning(r, c.Reason.Code(), c.Decl.Site.Span, msg).Emit()
	}
	verb := "renamed"
	if diffOnly {
		verb = "would rename"
	}
	for _, a := range fr.Applied {
		if len(a.Decls) == 0 {
			continue
		}
		msg := fmt.Sprintf("%s %s to %s (%d sites in %d files)", verb, a.Original, a.Target, len(a.Sites), len(a.Files()))
		b := diag.ReportInfo(r, diag.FixInfo, a.Decls[0].Site.Span, msg)
		for _, d := range a.Decls[1:] {
			b.WithNote(d.Site.Span, "also declared here")
		}
		b.Emit()
	}
}
