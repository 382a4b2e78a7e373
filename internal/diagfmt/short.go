package diagfmt

import (
	"io"

	"lintnames/internal/diag"
	"lintnames/internal/source"
)

// Short печатает по одной строке на диагностику:
// <SEV> <CODE> <path>:<line>:<col> <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
