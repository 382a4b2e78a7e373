package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type styles struct {
	ok, bad, warn, dim, bold *color.Color
}

func newStyles(enabled bool) styles {
	s := styles{
		ok:   color.New(color.FgGreen, color.Bold),
		bad:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow),
		dim:  color.New(color.Faint),
		bold: color.New(color.Bold),
	}
	for _, c := range []*color.Color{s.ok, s.bad, s.warn, s.dim, s.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// Print writes the human summary block.
func Print(w io.Writer, s *Summary, useColor bool) {
	st := newStyles(useColor)

	for _, err := range s.ParseErrList {
		fmt.Fprintf(w, "%s %v\n", st.warn.Sprint("parse error:"), err)
	}
	for _, err := range s.IOErrList {
		fmt.Fprintf(w, "%s %v\n", st.warn.Sprint("i/o error:"), err)
	}
	for _, c := range s.ConflictList {
		fmt.Fprintf(w, "%s %v\n", st.warn.Sprint("conflict:"), c.Err)
	}
	for _, err := range s.WriteErrList {
		fmt.Fprintf(w, "%s %v\n", st.bad.Sprint("write error:"), err)
	}
	if s.Mode == ModeFix {
		for _, ch := range s.ChangedFiles {
			fmt.Fprintf(w, "%s %s (%s)\n", st.dim.Sprint("rewrote"), ch.Path, strings.Join(ch.Renames, ", "))
		}
	}

	switch {
	case s.Violations == 0:
		fmt.Fprintf(w, "%s\n", st.ok.Sprint("no naming violations"))
	default:
		parts := make([]string, 0, len(s.ByRule))
		for _, c := range s.ByRule {
			parts = append(parts, fmt.Sprintf("%s %d", c.Key, c.N))
		}
		head := fmt.Sprintf("%s in %s", plural(s.Violations, "violation", "violations"), plural(len(s.ByFile), "file", "files"))
		if s.Unresolved > 0 {
			head = st.bad.Sprint(head)
		} else {
			head = st.ok.Sprint(head)
		}
		fmt.Fprintf(w, "%s (%s)\n", head, strings.Join(parts, ", "))
	}

	switch s.Mode {
	case ModeFix:
		fmt.Fprintf(w, "renamed %s, %s unresolved\n", plural(s.RenamesApplied, "identifier", "identifiers"), st.bold.Sprint(s.Unresolved))
	case ModeDiff:
		fmt.Fprintf(w, "diff touches %s\n", plural(s.FilesChanged, "file", "files"))
	}

	stats := fmt.Sprintf("scanned %s", plural(s.FilesScanned, "file", "files"))
	if s.CacheHits > 0 {
		stats += fmt.Sprintf(" (%d cached)", s.CacheHits)
	}
	stats += fmt.Sprintf(", %s, %s, %s",
		plural(s.ParseErrors, "parse error", "parse errors"),
		plural(s.Conflicts, "conflict", "conflicts"),
		plural(s.WriteErrors, "write error", "write errors"))
	fmt.Fprintln(w, st.dim.Sprint(stats))
}
