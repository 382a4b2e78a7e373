package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lintnames/internal/diag"
	"lintnames/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note, fix       *color.Color
	added, removed  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.Bold),
		path:    color.New(color.FgWhite, color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgGreen, color.Bold),
		note:    color.New(color.FgCyan),
		fix:     color.New(color.FgMagenta),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note, p.fix, p.added, p.removed} {
		// решение о цвете принимает вызывающий, а не isatty внутри color
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) (string, source.LineCol, source.LineCol, bool) {
	f := fs.Get(span.File)
	if f == nil {
		return "", source.LineCol{}, source.LineCol{}, false
	}
	start, end := fs.Resolve(span)
	return formatPath(f, fs, mode), start, end, true
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	path, start, end, ok := location(fs, d.Primary, opts.PathMode)
	if ok {
		fmt.Fprintf(w, "%s: ", p.path.Sprintf("%s:%d:%d", path, start.Line, start.Col))
	}
	fmt.Fprintf(w, "%s %s: %s\n",
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	if ok {
		writeContext(w, fs.Get(d.Primary.File), start, end, opts, p)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			npath, nstart, _, nok := location(fs, n.Span, opts.PathMode)
			if !nok {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), npath, nstart.Line, nstart.Col, n.Msg)
		}
	}

	if opts.ShowFixes {
		for i, f := range sortedFixes(d.Fixes) {
			writeFix(w, i+1, f, fs, opts, p)
		}
	}
}

func writeContext(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, p palette) {
	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(start.Line+ctx, uint32(len(f.LineIdx))+1)
	gw := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		line := expandTabs(text)
		if opts.Width > 0 {
			line = runewidth.Truncate(line, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gw, ln), line)
		if ln != start.Line {
			continue
		}
		col := int(start.Col) - 1
		endCol := len(text)
		if end.Line == start.Line {
			endCol = int(end.Col) - 1
		}
		col = min(max(col, 0), len(text))
		endCol = min(max(endCol, col), len(text))
		pad := runewidth.StringWidth(expandTabs(text[:col]))
		width := max(runewidth.StringWidth(expandTabs(text[col:endCol])), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gw, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

func writeFix(w io.Writer, n int, f *diag.Fix, fs *source.FileSet, opts PrettyOpts, p palette) {
	meta := f.Applicability.String()
	if f.IsPreferred {
		meta += ", preferred"
	}
	fmt.Fprintf(w, "  %s %s (%s)", p.fix.Sprintf("fix #%d:", n), f.Title, meta)
	if f.ID != "" {
		fmt.Fprintf(w, " id=%s", f.ID)
	}
	fmt.Fprintln(w)

	for _, e := range f.Edits {
		epath, es, ee, ok := location(fs, e.Span, opts.PathMode)
		if ok {
			fmt.Fprintf(w, "    edit %s:%d:%d-%d:%d apply=%q", epath, es.Line, es.Col, ee.Line, ee.Col, e.NewText)
		} else {
			fmt.Fprintf(w, "    edit apply=%q", e.NewText)
		}
		if e.OldText != "" {
			fmt.Fprintf(w, " expect=%q", e.OldText)
		}
		fmt.Fprintln(w)

		if !opts.ShowPreview {
			continue
		}
		preview, err := buildFixEditPreview(fs, e)
		if err != nil {
			fmt.Fprintf(w, "      preview unavailable: %v\n", err)
			continue
		}
		fmt.Fprintln(w, "      preview:")
		for _, l := range preview.before {
			fmt.Fprintf(w, "        %s\n", p.removed.Sprint("- "+l))
		}
		for _, l := range preview.after {
			fmt.Fprintf(w, "        %s\n", p.added.Sprint("+ "+l))
		}
	}
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
