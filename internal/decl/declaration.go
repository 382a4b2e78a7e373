package decl

import (
	"lintnames/internal/source"
)

// Site is one occurrence of an identifier in the tree.
type Site struct {
	File  source.FileID
	Path  string
	Span  source.Span
	Start source.LineCol
	End   source.LineCol
	// Text is the source spelling under Span.
	Text string
}

// Declaration is an interface or type alias together with every other
// site in the tree that spells the same identifier.
type Declaration struct {
	Name       string
	Kind       Kind
	Site       Site
	Exported   bool
	Ambient    bool
	References []Site
}

// NewSite resolves a byte range of file into a Site.
func NewSite(fs *source.FileSet, file *source.File, start, end uint32, text string) Site {
	sp := source.Span{File: file.ID, Start: start, End: end}
	from, to := fs.Resolve(sp)
	return Site{
		File:  file.ID,
		Path:  file.Path,
		Span:  sp,
		Start: from,
		End:   to,
		Text:  text,
	}
}
