// Package testkit holds helpers shared by package tests: building source
// trees on disk and checking the invariants a rename must keep.
package testkit

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"fortio.org/safecast"

	"lintnames/internal/decl"
	"lintnames/internal/lexer"
	"lintnames/internal/source"
	"lintnames/internal/token"
)

// WriteTree creates files (slash-separated relative paths) under root.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// ReadTree returns every regular file under root keyed by slash path.
func ReadTree(t testing.TB, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("read tree: %v", err)
	}
	return out
}

// CountIdent lexes content and counts identifier tokens spelling name.
func CountIdent(content, name string) int {
	fset := source.NewFileSet()
	f := fset.Get(fset.AddVirtual("count.ts", []byte(content)))
	n := 0
	for _, tok := range lexer.All(f, lexer.Options{}) {
		if tok.Kind == token.Ident && decl.Normalize(tok.Text) == name {
			n++
		}
	}
	return n
}

// CheckRenamed verifies a rename over a whole tree: no identifier named
// original is left in the files with the given extension, and target
// occurs exactly wantTarget times.
func CheckRenamed(tree map[string]string, ext, original, target string, wantTarget int) error {
	paths := make([]string, 0, len(tree))
	for p := range tree {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	got := 0
	for _, p := range paths {
		if filepath.Ext(p) != ext {
			continue
		}
		if n := CountIdent(tree[p], original); n > 0 {
			return fmt.Errorf("%s: %d occurrence(s) of %s left after rename", p, n, original)
		}
		got += CountIdent(tree[p], target)
	}
	if got != wantTarget {
		return fmt.Errorf("%s occurs %d time(s), want %d", target, got, wantTarget)
	}
	return nil
}

// CheckFactInvariants checks that extracted facts point at real text:
// every identifier span is in bounds and spells the identifier, and every
// declaration and binding coincides with an identifier span.
func CheckFactInvariants(file *source.File, facts decl.Facts) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	starts := make(map[uint32]uint32, len(facts.Idents))
	for _, id := range facts.Idents {
		if id.End <= id.Start || id.End > size {
			return fmt.Errorf("ident %s has bad span [%d,%d)", id.Name, id.Start, id.End)
		}
		if text := string(file.Content[id.Start:id.End]); text != id.Spelling() {
			return fmt.Errorf("ident %s at %d spells %q", id.Name, id.Start, text)
		}
		starts[id.Start] = id.End
	}
	for _, d := range facts.Declarations {
		if end, ok := starts[d.Start]; !ok || end != d.End {
			return fmt.Errorf("declaration %s [%d,%d) is not an identifier", d.Name, d.Start, d.End)
		}
	}
	for _, b := range facts.Bindings {
		if end, ok := starts[b.Start]; !ok || end != b.End {
			return fmt.Errorf("binding %s [%d,%d) is not an identifier", b.Name, b.Start, b.End)
		}
	}
	return nil
}
