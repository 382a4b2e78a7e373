package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lintnames/internal/diag"
	"lintnames/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := userBag("/home/user/project/src/user.ts")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/user.ts:1:11"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/user.ts:1:11"},
		{name: "Basename only", mode: PathModeBasename, contains: "user.ts:1:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING NAM3001: interface IUser") {
				t.Errorf("expected header line, got:\n%s", output)
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "Short path - as is", path: "user.ts", expected: "user.ts:1:11"},
		{name: "Long absolute path - basename", path: "/very/long/absolute/path/to/some/nested/directory/user.ts", expected: " user.ts:1:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag, fs := userBag(tt.path)
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := " " + buf.String()
			if !strings.Contains(output, tt.expected) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	bag, fs := userBag("user.ts")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	output := buf.String()

	if !strings.Contains(output, "1 | interface IUser { id: string }\n") {
		t.Fatalf("expected source line, got:\n%s", output)
	}
	want := " | " + strings.Repeat(" ", 10) + "^~~~~\n"
	if !strings.Contains(output, want) {
		t.Fatalf("expected underline %q, got:\n%s", want, output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Fatalf("expected no escape codes with Color=false, got:\n%q", output)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.ts", []byte("// one\ntype TId = string\n// three\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.NameTypePrefix, source.Span{File: fileID, Start: 12, End: 15}, "type TId"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	output := buf.String()
	for _, want := range []string{"1 | // one", "2 | type TId = string", "3 | // three"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "4 |") {
		t.Errorf("context must stop at the last line, got:\n%s", output)
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := userBag("user.ts")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes with Color=true, got:\n%q", buf.String())
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	bag, fs := userBag("user.ts")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:  PathModeBasename,
		ShowNotes: true,
		ShowFixes: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: user.ts:2:10: referenced here",
		"fix #1: rename IUser to User (safe-with-heuristics, preferred) id=interface-prefix:IUser",
		`edit user.ts:1:11-1:16 apply="User" expect="IUser"`,
		`edit user.ts:2:10-2:15 apply="User" expect="IUser"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "preview:") {
		t.Errorf("preview must be off by default, got:\n%s", output)
	}
}

func TestPrettyFixPreview(t *testing.T) {
	bag, fs := userBag("user.ts")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"preview:",
		"- interface IUser { id: string }",
		"+ interface User { id: string }",
		`+ const u: User = { id: "1" }`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyWidth(t *testing.T) {
	bag, fs := userBag("user.ts")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Width: 12})
	if !strings.Contains(buf.String(), "1 | interface I…\n") {
		t.Fatalf("expected truncated line, got:\n%s", buf.String())
	}
}

func TestShort(t *testing.T) {
	bag, fs := userBag("user.ts")
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatal(err)
	}
	want := "warning NAM3001 user.ts:1:11 interface IUser: no I prefix on type names\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := Short(&buf, diag.NewBag(1), fs, false); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty bag must print nothing, got %q", buf.String())
	}
}
