package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"lintnames/internal/decl"
	"lintnames/internal/diag"
	"lintnames/internal/errs"
	"lintnames/internal/observ"
	"lintnames/internal/report"
	"lintnames/internal/rules"
	"lintnames/internal/source"
	"lintnames/internal/testkit"
	"lintnames/internal/trace"
)

var userTree = map[string]string{
	"src/user.ts":               "export interface IUser {\n  id: string;\n}\n",
	"src/app.ts":                "import { IUser } from './user';\n\nexport function load(u: IUser): IUser {\n  return u;\n}\n",
	"node_modules/lib/index.ts": "export interface IVendor {}\n",
}

func run(t *testing.T, root string, req Request) *Result {
	t.Helper()
	req.Root = root
	res, err := Run(context.Background(), &req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.State != StateDone {
		t.Fatalf("state = %s, want done", res.State)
	}
	return res
}

func TestCheckModeReportsViolations(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, userTree)
	sink := &RecordingSink{}

	res := run(t, root, Request{Mode: report.ModeCheck, Progress: sink})

	if res.ExitCode() != errs.ExitViolations {
		t.Fatalf("exit = %d, want 1", res.ExitCode())
	}
	if len(res.Violations) != 1 || res.Violations[0].Decl.Name != "IUser" {
		t.Fatalf("violations = %+v", res.Violations)
	}
	if res.Fix != nil || res.Timings.Has(StageRewrite) {
		t.Fatalf("check mode must not rewrite")
	}
	for _, st := range []Stage{StageScan, StageEvaluate, StageReport} {
		if !res.Timings.Has(st) {
			t.Errorf("missing timing for %s", st)
		}
	}
	if got := testkit.ReadTree(t, root)["src/user.ts"]; got != userTree["src/user.ts"] {
		t.Fatalf("check mode modified the tree:\n%s", got)
	}

	var files, phases int
	for _, ev := range sink.Events() {
		if ev.File != "" {
			files++
			if ev.Total != 2 {
				t.Errorf("file event total = %d, want 2", ev.Total)
			}
			continue
		}
		if ev.Status == StatusDone {
			phases++
		}
	}
	if files != 2 || phases != 3 {
		t.Fatalf("files=%d phases=%d", files, phases)
	}

	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.NameInterfacePrefix {
			found = true
		}
	}
	if !found {
		t.Fatalf("bag lacks the violation diagnostic")
	}
}

func TestFixModeRenamesAndSecondRunIsClean(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, userTree)

	res := run(t, root, Request{Mode: report.ModeFix})
	if res.ExitCode() != errs.ExitOK {
		t.Fatalf("exit = %d, want 0: %v", res.ExitCode(), res.Summary.Gate())
	}
	if res.Summary.RenamesApplied != 1 || res.Summary.FilesChanged != 2 {
		t.Fatalf("summary = %+v", res.Summary)
	}
	tree := testkit.ReadTree(t, root)
	if err := testkit.CheckRenamed(tree, ".ts", "IUser", "User", 4); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tree["node_modules/lib/index.ts"], "IVendor") {
		t.Fatalf("vendored file must stay untouched")
	}

	again := run(t, root, Request{Mode: report.ModeCheck})
	if len(again.Violations) != 0 || again.ExitCode() != errs.ExitOK {
		t.Fatalf("second run not clean: %+v", again.Violations)
	}
}

func TestFixModeNotesAppliedRenames(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, userTree)

	res := run(t, root, Request{Mode: report.ModeFix})
	var notes []diag.Diagnostic
	for _, d := range res.Bag.Items() {
		if d.Code == diag.FixInfo {
			notes = append(notes, d)
		}
	}
	if len(notes) != 1 {
		t.Fatalf("rename notes = %+v", notes)
	}
	if notes[0].Severity != diag.SevInfo || notes[0].Message != "renamed IUser to User (4 sites in 2 files)" {
		t.Fatalf("note = %+v", notes[0])
	}
}

func TestRepeatedViolationsReportOnce(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.ts", []byte("interface ITUserDto {}\n")))
	d := &decl.Declaration{
		Name: "ITUserDto",
		Kind: decl.KindInterface,
		Site: decl.NewSite(fs, file, 10, 19, "ITUserDto"),
	}
	engine, err := rules.NewEngine(rules.Options{})
	if err != nil {
		t.Fatal(err)
	}
	violations := engine.Evaluate(d)
	if len(violations) != 3 {
		t.Fatalf("violations = %d, want one per rule", len(violations))
	}

	bag := diag.NewBag(0)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	reportViolations(rep, append(violations, violations...))
	if bag.Len() != 3 || rep.Suppressed() != 3 {
		t.Fatalf("diagnostics=%d repeated=%d", bag.Len(), rep.Suppressed())
	}
}

func TestDiffModeLeavesTree(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, userTree)

	res := run(t, root, Request{Mode: report.ModeDiff})
	if !strings.Contains(res.Fix.Diff, "+export interface User {") {
		t.Fatalf("unexpected diff:\n%s", res.Fix.Diff)
	}
	if got := testkit.ReadTree(t, root)["src/user.ts"]; got != userTree["src/user.ts"] {
		t.Fatalf("diff mode modified the tree")
	}
	if res.ExitCode() != errs.ExitViolations {
		t.Fatalf("diff mode keeps violations unresolved, exit = %d", res.ExitCode())
	}
}

func TestCollisionIsReportedAndBlocksRename(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, map[string]string{
		"a.ts": "interface IUser { id: string }\n",
		"b.ts": "export class User {}\n",
	})

	res := run(t, root, Request{Mode: report.ModeFix})
	if res.Summary.Conflicts != 1 || res.ExitCode() != errs.ExitViolations {
		t.Fatalf("conflicts=%d exit=%d", res.Summary.Conflicts, res.ExitCode())
	}
	var conflict *diag.Diagnostic
	for _, d := range res.Bag.Items() {
		if d.Code == diag.FixRenameCollision {
			conflict = &d
		}
	}
	if conflict == nil {
		t.Fatal("expected a collision diagnostic")
	}
	if !errors.Is(res.Fix.Conflicts[0].Err, errs.ErrRenameCollision) {
		t.Fatalf("conflict error = %v", res.Fix.Conflicts[0].Err)
	}
	if got := testkit.ReadTree(t, root)["a.ts"]; !strings.Contains(got, "IUser") {
		t.Fatalf("collision must leave the tree untouched")
	}
}

func TestTargetDeclaredOutsideTreeBlocksRename(t *testing.T) {
	root := t.TempDir()
	tree := map[string]string{
		"node_modules/lib/index.d.ts": "export interface User { legacy: true }\n",
		"a.ts":                        "interface IUser { id: string }\nlet a: IUser;\nlet b: User;\n",
	}
	testkit.WriteTree(t, root, tree)

	res := run(t, root, Request{Mode: report.ModeFix})
	if res.Summary.Conflicts != 1 || res.ExitCode() != errs.ExitViolations {
		t.Fatalf("conflicts=%d exit=%d", res.Summary.Conflicts, res.ExitCode())
	}
	if !errors.Is(res.Fix.Conflicts[0].Err, errs.ErrRenameCollision) {
		t.Fatalf("conflict error = %v", res.Fix.Conflicts[0].Err)
	}
	if got := testkit.ReadTree(t, root)["a.ts"]; got != tree["a.ts"] {
		t.Fatalf("a.ts changed:\n%s", got)
	}
}

func TestCIGateOnParseErrors(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, map[string]string{
		"ok.ts":     "interface User { id: string }\n",
		"broken.ts": "const s = \"unterminated\n",
	})

	res := run(t, root, Request{Mode: report.ModeCheck})
	if res.ExitCode() != errs.ExitOK {
		t.Fatalf("parse errors alone must not fail outside ci, exit = %d", res.ExitCode())
	}
	if res.Summary.ParseErrors != 1 {
		t.Fatalf("parse errors = %d", res.Summary.ParseErrors)
	}

	res = run(t, root, Request{Mode: report.ModeCheck, CI: true})
	if res.ExitCode() != errs.ExitViolations {
		t.Fatalf("ci must fail on parse errors, exit = %d", res.ExitCode())
	}
}

func TestReportFile(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, userTree)
	out := filepath.Join(t.TempDir(), "report.json")

	run(t, root, Request{Mode: report.ModeCheck, ReportPath: out})

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var entries []report.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	want := report.Entry{File: "src/user.ts", Line: 1, Column: 18, Rule: "interface-prefix", Original: "IUser", Suggested: "User"}
	if len(entries) != 1 || entries[0] != want {
		t.Fatalf("entries = %+v", entries)
	}

	_, err = Run(context.Background(), &Request{Root: root, ReportPath: filepath.Join(root, "missing", "r.json")})
	if errs.ExitCode(err) != errs.ExitInternal || !errors.Is(err, errs.ErrIO) {
		t.Fatalf("unwritable report must be an internal i/o error, got %v", err)
	}
}

func TestUnreadableRoot(t *testing.T) {
	res, err := Run(context.Background(), &Request{Root: filepath.Join(t.TempDir(), "nope")})
	if !errors.Is(err, errs.ErrRootUnreadable) || errs.ExitCode(err) != errs.ExitInternal {
		t.Fatalf("err = %v", err)
	}
	if res.State != StateScanning || res.ExitCode() != errs.ExitInternal {
		t.Fatalf("state = %s", res.State)
	}
}

func TestUnknownRuleIsInternal(t *testing.T) {
	_, err := Run(context.Background(), &Request{Root: t.TempDir(), Rules: rules.Options{Disabled: []string{"no-such-rule"}}})
	if errs.ExitCode(err) != errs.ExitInternal {
		t.Fatalf("err = %v", err)
	}
}

func TestTraceAndTimer(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, userTree)
	ring := trace.NewRingTracer(256, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	timer := observ.NewTimer()

	if _, err := Run(ctx, &Request{Root: root, Mode: report.ModeFix, Timer: timer}); err != nil {
		t.Fatal(err)
	}

	begun := map[string]trace.Scope{}
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			begun[ev.Name] = ev.Scope
		}
	}
	for _, name := range []string{"scan", "evaluate", "rewrite", "report"} {
		if begun[name] != trace.ScopePhase {
			t.Errorf("missing phase span %q in %v", name, begun)
		}
	}
	if begun["lint-names"] != trace.ScopeRun {
		t.Errorf("missing run span")
	}

	rep := timer.Report()
	if len(rep.Phases) != 4 {
		t.Fatalf("timer phases = %+v", rep.Phases)
	}
}
