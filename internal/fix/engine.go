package fix

import (
	"context"
	"fmt"
	"sort"

	"lintnames/internal/diag"
	"lintnames/internal/errs"
	"lintnames/internal/source"
)

// Mode selects what Apply produces.
type Mode uint8

const (
	// ModeWrite rewrites files in place.
	ModeWrite Mode = iota + 1
	// ModeDiff leaves the tree alone and renders a unified diff.
	ModeDiff
)

type Options struct {
	Mode Mode
	// Jobs bounds parallel writes; <= 0 means GOMAXPROCS.
	Jobs int
}

// FileChange summarises modifications of one file.
type FileChange struct {
	Path    string
	Edits   int
	Renames []string
}

// Result of Apply.
type Result struct {
	Applied     []*Rename
	Conflicts   []Conflict
	Changes     []FileChange
	Diff        string
	WriteErrors []error
}

// Renamed reports whether original was renamed.
func (r *Result) Renamed(original string) bool {
	for _, a := range r.Applied {
		if a.Original == original {
			return true
		}
	}
	return false
}

// stagedFile is the new content of one file with every accepted rename.
type stagedFile struct {
	file    *source.File
	edits   []diag.TextEdit // sorted by start
	renames []string
	content []byte
}

// Apply performs the planned renames. Each rename is all-or-nothing: a
// guard mismatch or an overlapping edit drops that rename, and a file that
// cannot be staged for writing withdraws every rename touching it before
// anything is committed.
func Apply(ctx context.Context, fs *source.FileSet, plan *Plan, opts Options) (*Result, error) {
	res := &Result{Conflicts: append([]Conflict(nil), plan.Conflicts...)}
	if opts.Mode == 0 {
		opts.Mode = ModeWrite
	}

	active, conflicts, files := stage(fs, plan.Renames)
	res.Conflicts = append(res.Conflicts, conflicts...)

	if opts.Mode == ModeDiff {
		res.Applied = active
		res.Changes = changes(fs, files)
		res.Diff = unifiedDiff(fs, files)
		return res, nil
	}

	for len(files) > 0 {
		pending, failed := prepareWrites(ctx, files, opts.Jobs)
		if err := ctx.Err(); err != nil {
			discard(pending)
			return res, err
		}
		if len(failed) == 0 {
			res.WriteErrors = append(res.WriteErrors, commitWrites(ctx, pending, opts.Jobs)...)
			break
		}
		discard(pending)

		// отзываем все переименования, задевающие сломанные файлы, и пересчитываем буферы
		var keep []*Rename
		for _, r := range active {
			err := touchesFailed(r, failed)
			if err == nil {
				keep = append(keep, r)
				continue
			}
			res.Conflicts = append(res.Conflicts, Conflict{
				Original: r.Original,
				Target:   r.Target,
				Reason:   ReasonWriteFailed,
				Err:      err,
				Decl:     r.Decls[0],
			})
		}
		for _, err := range failed {
			res.WriteErrors = append(res.WriteErrors, err)
		}
		active, _, files = stage(fs, keep)
	}

	res.Applied = active
	res.Changes = changes(fs, files)
	sortWriteErrors(res.WriteErrors)
	return res, nil
}

func touchesFailed(r *Rename, failed map[source.FileID]error) error {
	for _, id := range r.Files() {
		if err, ok := failed[id]; ok {
			return err
		}
	}
	return nil
}

// stage validates renames in order against the original file contents and
// builds the new buffers from the accepted ones.
func stage(fs *source.FileSet, renames []*Rename) ([]*Rename, []Conflict, []*stagedFile) {
	applied := make(map[source.FileID][]diag.TextEdit)
	owners := make(map[source.FileID][]string)
	var (
		accepted  []*Rename
		conflicts []Conflict
	)

	baseDir := fs.BaseDir()
	for _, r := range renames {
		buckets := groupEditsByFile(r.Fix().Edits)
		ids := make([]source.FileID, 0, len(buckets))
		for id := range buckets {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		staged := make(map[source.FileID][]diag.TextEdit, len(buckets))
		var skipReason string
		for _, id := range ids {
			file := fs.Get(id)
			edits := buckets[id]
			if file == nil {
				skipReason = fmt.Sprintf("unknown file %d", id)
				break
			}
			if conflictsWithExisting(applied[id], edits) {
				skipReason = fmt.Sprintf("conflicts with previously applied edits in %s", file.FormatPath("auto", baseDir))
				break
			}
			next := append([]diag.TextEdit(nil), applied[id]...)
			for _, edit := range edits {
				if edit.Span.End < edit.Span.Start || int(edit.Span.End) > len(file.Content) {
					skipReason = "edit span out of range"
					break
				}
				if conflictsWithExisting(next, []diag.TextEdit{edit}) {
					skipReason = "overlapping edits"
					break
				}
				if edit.OldText != "" && string(file.Content[edit.Span.Start:edit.Span.End]) != edit.OldText {
					skipReason = fmt.Sprintf("existing text in %s does not match expected content", file.FormatPath("auto", baseDir))
					break
				}
				next = insertEditSorted(next, edit)
			}
			if skipReason != "" {
				break
			}
			staged[id] = next
		}

		if skipReason != "" {
			conflicts = append(conflicts, Conflict{
				Original: r.Original,
				Target:   r.Target,
				Reason:   ReasonGuard,
				Err:      errs.NewRenameCollision(r.Original, r.Target, skipReason),
				Decl:     r.Decls[0],
			})
			continue
		}
		for id, edits := range staged {
			applied[id] = edits
			owners[id] = append(owners[id], r.Original)
		}
		accepted = append(accepted, r)
	}

	files := make([]*stagedFile, 0, len(applied))
	for id, edits := range applied {
		file := fs.Get(id)
		files = append(files, &stagedFile{
			file:    file,
			edits:   edits,
			renames: owners[id],
			content: render(file.Content, edits),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].file.Path < files[j].file.Path })
	return accepted, conflicts, files
}

// render applies sorted, non-overlapping edits to a copy of content.
func render(content []byte, edits []diag.TextEdit) []byte {
	out := make([]byte, 0, len(content))
	prev := uint32(0)
	for _, e := range edits {
		out = append(out, content[prev:e.Span.Start]...)
		out = append(out, e.NewText...)
		prev = e.Span.End
	}
	return append(out, content[prev:]...)
}

func changes(fs *source.FileSet, files []*stagedFile) []FileChange {
	out := make([]FileChange, 0, len(files))
	for _, f := range files {
		out = append(out, FileChange{
			Path:    f.file.FormatPath("relative", fs.BaseDir()),
			Edits:   len(f.edits),
			Renames: f.renames,
		})
	}
	return out
}

func conflictsWithExisting(existing []diag.TextEdit, edits []diag.TextEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict treats spans as half-open intervals. Two insertions never
// conflict; an insertion conflicts with a span that strictly contains it.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func groupEditsByFile(edits []diag.TextEdit) map[source.FileID][]diag.TextEdit {
	buckets := make(map[source.FileID][]diag.TextEdit)
	for _, edit := range edits {
		buckets[edit.Span.File] = append(buckets[edit.Span.File], edit)
	}
	return buckets
}

func insertEditSorted(edits []diag.TextEdit, edit diag.TextEdit) []diag.TextEdit {
	i := sort.Search(len(edits), func(i int) bool {
		if edits[i].Span.Start == edit.Span.Start {
			return edits[i].Span.End >= edit.Span.End
		}
		return edits[i].Span.Start > edit.Span.Start
	})
	edits = append(edits, diag.TextEdit{})
	copy(edits[i+1:], edits[i:])
	edits[i] = edit
	return edits
}
