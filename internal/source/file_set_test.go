package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("src/user.ts", []byte("interface IUser {}"), 0)
	id2 := fs.Add("src/user.ts", []byte("interface User {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected a new FileID for the second Add")
	}

	latest, ok := fs.GetLatest("src/user.ts")
	if !ok || latest != id2 {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", id2, latest, ok)
	}
	if got := string(fs.Get(id1).Content); got != "interface IUser {}" {
		t.Fatalf("first version changed: %q", got)
	}
	if fs.Len() != 2 {
		t.Fatalf("expected 2 files, got %d", fs.Len())
	}
}

func TestGetUnknownID(t *testing.T) {
	fs := NewFileSet()
	if f := fs.Get(3); f != nil {
		t.Fatalf("expected nil for unknown id, got %+v", f)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.ts", []byte("ab\ncd\n\nx"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 4, Col: 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestLoadNormalizesAndDenormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.ts")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("type TId = string;\r\nexport {};\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if string(f.Content) != "type TId = string;\nexport {};\n" {
		t.Fatalf("unexpected normalized content %q", f.Content)
	}
	if got := f.Denormalize(f.Content); string(got) != string(raw) {
		t.Fatalf("denormalize mismatch:\n got %q\nwant %q", got, raw)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.ts", []byte("first\nsecond\nthird")))

	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2: got %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3: got %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Fatalf("line 9: expected empty, got %q", got)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.ts")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "file.ts")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := "nested/file.ts"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestSpanOverlaps(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 9}
	if !a.Overlaps(Span{File: 1, Start: 8, End: 12}) {
		t.Fatalf("expected overlap")
	}
	if a.Overlaps(Span{File: 1, Start: 9, End: 12}) {
		t.Fatalf("adjacent spans must not overlap")
	}
	if a.Overlaps(Span{File: 2, Start: 4, End: 9}) {
		t.Fatalf("spans of different files must not overlap")
	}
}
