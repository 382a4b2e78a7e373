package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"

	"lintnames/internal/errs"
	"lintnames/internal/rules"
	"lintnames/internal/source"
)

// Entry is one element of the JSON report array.
type Entry struct {
	File      string `json:"file"`
	Line      uint32 `json:"line"`
	Column    uint32 `json:"column"`
	Rule      string `json:"rule"`
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
}

// Entries converts violations into report entries. Paths are made relative
// to root with forward slashes. Order: file, line, column, rule order.
func Entries(root string, violations []rules.Violation) []Entry {
	out := make([]Entry, 0, len(violations))
	order := make(map[string]int)
	for i, r := range rules.All() {
		order[r.ID] = i
	}
	for _, v := range violations {
		site := v.Decl.Site
		out = append(out, Entry{
			File:      displayPath(root, site.Path),
			Line:      site.Start.Line,
			Column:    site.Start.Col,
			Rule:      v.Rule.ID,
			Original:  v.Decl.Name,
			Suggested: v.Suggested,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return order[a.Rule] < order[b.Rule]
	})
	return out
}

func displayPath(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	base := root
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		base = filepath.Dir(root)
	}
	rel, err := source.RelativePath(path, base)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// WriteJSON encodes entries as a JSON array; an empty report is "[]".
func WriteJSON(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteFile writes the JSON report to path through a temporary sibling so a
// reader never sees a half-written report.
func WriteFile(path string, entries []Entry) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errs.NewIOError("create", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return errs.NewIOError("chmod", path, err)
	}
	if err = WriteJSON(tmp, entries); err != nil {
		_ = tmp.Close()
		return errs.NewIOError("write", path, err)
	}
	if err = tmp.Close(); err != nil {
		return errs.NewIOError("close", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errs.NewIOError("rename", path, errors.WithStack(err))
	}
	return nil
}
