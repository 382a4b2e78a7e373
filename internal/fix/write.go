package fix

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"lintnames/internal/errs"
	"lintnames/internal/source"
	"lintnames/internal/trace"
)

// createTemp is swapped in tests to simulate staging failures.
var createTemp = os.CreateTemp

type pendingWrite struct {
	file *stagedFile
	tmp  string
}

func workers(jobs, n int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

// prepareWrites writes every staged file to a temporary sibling, one
// goroutine per file. Files that fail are returned by ID; the others stay
// pending until commitWrites or discard.
func prepareWrites(ctx context.Context, files []*stagedFile, jobs int) ([]pendingWrite, map[source.FileID]error) {
	tracer := trace.FromContext(ctx)
	parent := trace.ParentFromContext(ctx)

	pending := make([]pendingWrite, len(files))
	failures := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(workers(jobs, len(files)))
	for i, f := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			span := trace.Begin(tracer, trace.ScopeFile, "stage:"+f.file.Path, parent)
			tmp, err := writeTemp(f)
			if err != nil {
				failures[i] = errs.NewIOError("stage", f.file.Path, err)
				span.End("failed")
				return nil
			}
			pending[i] = pendingWrite{file: f, tmp: tmp}
			span.End("")
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // горутины не возвращают ошибок

	failed := make(map[source.FileID]error)
	out := pending[:0]
	for i, p := range pending {
		if failures[i] != nil {
			failed[files[i].file.ID] = failures[i]
			continue
		}
		if p.tmp != "" {
			out = append(out, p)
		}
	}
	return out, failed
}

func writeTemp(f *stagedFile) (string, error) {
	path := f.file.Path
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := createTemp(filepath.Dir(path), "."+filepath.Base(path)+".lintnames-*")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	fail := func(err error) (string, error) {
		tmp.Close()     //nolint:errcheck
		os.Remove(name) //nolint:errcheck
		return "", err
	}
	if _, err := tmp.Write(f.file.Denormalize(f.content)); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name) //nolint:errcheck
		return "", err
	}
	return name, nil
}

// commitWrites renames every temp file over its target. A failure here is
// reported per file and does not stop the others.
func commitWrites(ctx context.Context, pending []pendingWrite, jobs int) []error {
	errsOut := make([]error, len(pending))
	var g errgroup.Group
	g.SetLimit(workers(jobs, len(pending)))
	for i, p := range pending {
		g.Go(func() error {
			if err := os.Rename(p.tmp, p.file.file.Path); err != nil {
				os.Remove(p.tmp) //nolint:errcheck
				errsOut[i] = errs.NewIOError("write", p.file.file.Path, err)
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck
	trace.Point(trace.FromContext(ctx), trace.ScopePhase, "commit", "", trace.ParentFromContext(ctx))

	var out []error
	for _, err := range errsOut {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

func discard(pending []pendingWrite) {
	for _, p := range pending {
		os.Remove(p.tmp) //nolint:errcheck
	}
}

func sortWriteErrors(list []error) {
	sort.SliceStable(list, func(i, j int) bool {
		var a, b *errs.IOError
		if errors.As(list[i], &a) && errors.As(list[j], &b) {
			return a.Path < b.Path
		}
		return false
	})
}
