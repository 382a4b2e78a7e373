package driver

import (
	"bytes"
	"sort"

	"lintnames/internal/decl"
	"lintnames/internal/source"
)

// Index is the tree-wide view built after the scan barrier: declarations
// with their references, every identifier site and the names bound per file.
type Index struct {
	FileSet      *source.FileSet
	Declarations []*decl.Declaration

	sites     map[string][]decl.Site
	typeLevel map[string][]decl.Site
	bound     map[source.FileID]map[string]struct{}
	broken    []source.FileID
}

// BuildIndex aggregates scan results. Files that failed to parse contribute
// nothing except their raw content, kept for Mentions.
func BuildIndex(res *ScanResult) *Index {
	idx := &Index{
		FileSet:   res.FileSet,
		sites:     make(map[string][]decl.Site),
		typeLevel: make(map[string][]decl.Site),
		bound:     make(map[source.FileID]map[string]struct{}),
	}
	for i := range res.Files {
		fr := &res.Files[i]
		if !fr.Loaded {
			continue
		}
		if fr.Err != nil {
			idx.broken = append(idx.broken, fr.FileID)
			continue
		}
		idx.addFile(res.FileSet.Get(fr.FileID), &fr.Facts)
	}
	for _, d := range idx.Declarations {
		d.References = idx.referencesOf(d)
	}
	sort.SliceStable(idx.Declarations, func(i, j int) bool {
		a, b := idx.Declarations[i].Site, idx.Declarations[j].Site
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Span.Start < b.Span.Start
	})
	return idx
}

func (idx *Index) addFile(file *source.File, facts *decl.Facts) {
	for _, id := range facts.Idents {
		idx.sites[id.Name] = append(idx.sites[id.Name], decl.NewSite(idx.FileSet, file, id.Start, id.End, id.Spelling()))
	}
	names := make(map[string]struct{}, len(facts.Bindings))
	for _, b := range facts.Bindings {
		names[b.Name] = struct{}{}
		if b.Kind.IsTypeLevel() {
			idx.typeLevel[b.Name] = append(idx.typeLevel[b.Name], decl.NewSite(idx.FileSet, file, b.Start, b.End, b.Name))
		}
	}
	idx.bound[file.ID] = names
	for _, d := range facts.Declarations {
		idx.Declarations = append(idx.Declarations, newDeclaration(idx.FileSet, file, d))
	}
}

func newDeclaration(fs *source.FileSet, file *source.File, d decl.Decl) *decl.Declaration {
	return &decl.Declaration{
		Name:     d.Name,
		Kind:     d.Kind,
		Site:     decl.NewSite(fs, file, d.Start, d.End, string(file.Content[d.Start:d.End])),
		Exported: d.Exported,
		Ambient:  d.Ambient,
	}
}

func (idx *Index) referencesOf(d *decl.Declaration) []decl.Site {
	all := idx.sites[d.Name]
	out := make([]decl.Site, 0, len(all))
	for _, s := range all {
		if s.Span == d.Site.Span {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Sites returns every occurrence of name in parsable files, in file order.
func (idx *Index) Sites(name string) []decl.Site {
	return idx.sites[decl.Normalize(name)]
}

// TypeDeclared returns the sites where name is declared in the type space
// (interface, type alias, class, enum, namespace) anywhere in the tree.
func (idx *Index) TypeDeclared(name string) []decl.Site {
	return idx.typeLevel[decl.Normalize(name)]
}

// Bound reports whether file introduces name in any way.
func (idx *Index) Bound(file source.FileID, name string) bool {
	_, ok := idx.bound[file][decl.Normalize(name)]
	return ok
}

// Unparsable returns the files that failed to lex or balance.
func (idx *Index) Unparsable() []*source.File {
	out := make([]*source.File, 0, len(idx.broken))
	for _, id := range idx.broken {
		out = append(out, idx.FileSet.Get(id))
	}
	return out
}

// Mentions returns the unparsable files whose raw text contains name as a
// whole word. Their sites cannot be located reliably.
func (idx *Index) Mentions(name string) []*source.File {
	var out []*source.File
	for _, f := range idx.Unparsable() {
		if containsWord(f.Content, name) {
			out = append(out, f)
		}
	}
	return out
}

// containsWord searches for name not surrounded by identifier bytes.
func containsWord(content []byte, name string) bool {
	if name == "" {
		return false
	}
	needle := []byte(name)
	for off := 0; off < len(content); {
		i := bytes.Index(content[off:], needle)
		if i < 0 {
			return false
		}
		i += off
		end := i + len(needle)
		if (i == 0 || !isWordByte(content[i-1])) && (end == len(content) || !isWordByte(content[end])) {
			return true
		}
		off = i + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || b == '$' || b >= 0x80 ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
