package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"lintnames/internal/diag"
	"lintnames/internal/source"
)

func decodeJSON(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	return out
}

func TestJSONBasic(t *testing.T) {
	bag, fs := userBag("user.ts")
	out := decodeJSON(t, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})

	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got count=%d len=%d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "NAM3001" {
		t.Errorf("unexpected severity/code: %s %s", d.Severity, d.Code)
	}
	want := LocationJSON{File: "user.ts", StartByte: 10, EndByte: 15, StartLine: 1, StartCol: 11, EndLine: 1, EndCol: 16}
	if d.Location != want {
		t.Errorf("location = %+v, want %+v", d.Location, want)
	}
	if d.Notes != nil || d.Fixes != nil {
		t.Errorf("notes and fixes must be omitted by default")
	}
}

func TestJSONWithNotesAndFixes(t *testing.T) {
	bag, fs := userBag("user.ts")
	out := decodeJSON(t, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	d := out.Diagnostics[0]

	if len(d.Notes) != 1 || d.Notes[0].Message != "referenced here" || d.Notes[0].Location.StartLine != 2 {
		t.Fatalf("unexpected notes: %+v", d.Notes)
	}
	if len(d.Fixes) != 1 {
		t.Fatalf("expected 1 fix, got %d", len(d.Fixes))
	}
	fix := d.Fixes[0]
	if fix.ID != "interface-prefix:IUser" || fix.Title != "rename IUser to User" {
		t.Errorf("unexpected fix: %+v", fix)
	}
	if fix.Applicability != "safe-with-heuristics" || !fix.IsPreferred {
		t.Errorf("unexpected fix meta: %+v", fix)
	}
	if len(fix.Edits) != 2 {
		t.Fatalf("expected 2 edits, got %d", len(fix.Edits))
	}
	if e := fix.Edits[1]; e.NewText != "User" || e.OldText != "IUser" || e.Location.StartByte != 40 {
		t.Errorf("unexpected edit: %+v", e)
	}
	if fix.Edits[0].BeforeLines != nil {
		t.Errorf("previews must be off by default")
	}
}

func TestJSONFixOrdering(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ts", []byte("type TFoo = 1\n"))
	sp := source.Span{File: id, Start: 5, End: 9}
	d := diag.New(diag.SevWarning, diag.NameTypePrefix, sp, "type TFoo")
	d = d.WithFixSuggestion(&diag.Fix{Title: "b", Applicability: diag.FixApplicabilityManualReview})
	d = d.WithFixSuggestion(&diag.Fix{Title: "a", Applicability: diag.FixApplicabilityManualReview})
	d = d.WithFixSuggestion(&diag.Fix{Title: "z", Applicability: diag.FixApplicabilityAlwaysSafe})
	d = d.WithFixSuggestion(&diag.Fix{Title: "preferred", Applicability: diag.FixApplicabilityManualReview, IsPreferred: true})
	bag := diag.NewBag(1)
	bag.Add(d)

	out := decodeJSON(t, bag, fs, JSONOpts{IncludeFixes: true})
	var titles []string
	for _, f := range out.Diagnostics[0].Fixes {
		titles = append(titles, f.Title)
	}
	want := []string{"preferred", "z", "a", "b"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles = %v, want %v", titles, want)
		}
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	bag, fs := userBag("user.ts")
	out := decodeJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename})
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 || loc.EndLine != 0 || loc.EndCol != 0 {
		t.Errorf("positions must be omitted, got %+v", loc)
	}
	if loc.StartByte != 10 || loc.EndByte != 15 {
		t.Errorf("byte offsets must be kept, got %+v", loc)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ts", []byte("type TA = 1\ntype TB = 2\ntype TC = 3\n"))
	bag := diag.NewBag(10)
	for i := range uint32(3) {
		bag.Add(diag.New(diag.SevWarning, diag.NameTypePrefix, source.Span{File: id, Start: 12*i + 5, End: 12*i + 7}, "t"))
	}

	out := decodeJSON(t, bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", out.Count)
	}
	if bag.Len() != 3 {
		t.Fatalf("Max must not truncate the bag")
	}
}

func TestJSONPathModes(t *testing.T) {
	bag, fs := userBag("/home/user/project/src/user.ts")
	tests := []struct {
		name     string
		mode     PathMode
		expected string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/user.ts"},
		{"relative", PathModeRelative, "src/user.ts"},
		{"basename", PathModeBasename, "user.ts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := decodeJSON(t, bag, fs, JSONOpts{PathMode: tt.mode})
			if got := out.Diagnostics[0].Location.File; got != tt.expected {
				t.Errorf("file = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestJSONFixPreview(t *testing.T) {
	bag, fs := userBag("user.ts")
	out := decodeJSON(t, bag, fs, JSONOpts{IncludeFixes: true, IncludePreviews: true})
	e := out.Diagnostics[0].Fixes[0].Edits[0]
	if len(e.BeforeLines) != 1 || e.BeforeLines[0] != "interface IUser { id: string }" {
		t.Errorf("unexpected before lines: %q", e.BeforeLines)
	}
	if len(e.AfterLines) != 1 || e.AfterLines[0] != "interface User { id: string }" {
		t.Errorf("unexpected after lines: %q", e.AfterLines)
	}
}
