package fix

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"lintnames/internal/source"
)

// unifiedDiff renders staged files as one git-style unified diff.
func unifiedDiff(fs *source.FileSet, files []*stagedFile) string {
	var sb strings.Builder
	for _, f := range files {
		rel := f.file.FormatPath("relative", fs.BaseDir())
		before, after := string(f.file.Content), string(f.content)
		edits := myers.ComputeEdits(span.URIFromPath(rel), before, after)
		fmt.Fprint(&sb, gotextdiff.ToUnified("a/"+rel, "b/"+rel, before, edits))
	}
	return sb.String()
}
