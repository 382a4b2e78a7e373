package driver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"lintnames/internal/decl"
	"lintnames/internal/diag"
	"lintnames/internal/errs"
	"lintnames/internal/source"
	"lintnames/internal/trace"
)

// FileResult is what one worker produced for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Loaded bool
	Cached bool
	Facts  decl.Facts
	// Err is a ParseError or an IOError; the file contributes no facts.
	Err error
}

// ScanResult is the aggregated output of Scan. It is complete: every
// worker has finished before Scan returns.
type ScanResult struct {
	Root       string
	FileSet    *source.FileSet
	Files      []FileResult
	WalkErrors []error
	// Bag holds lexical, structural and load diagnostics.
	Bag *diag.Bag
}

// ParseErrors returns the ParseErrors in file order.
func (r *ScanResult) ParseErrors() []error {
	var out []error
	for i := range r.Files {
		if r.Files[i].Loaded && r.Files[i].Err != nil {
			out = append(out, r.Files[i].Err)
		}
	}
	return out
}

// IOErrors returns walk and load errors.
func (r *ScanResult) IOErrors() []error {
	out := append([]error(nil), r.WalkErrors...)
	for i := range r.Files {
		if !r.Files[i].Loaded && r.Files[i].Err != nil {
			out = append(out, r.Files[i].Err)
		}
	}
	return out
}

// Cached counts cache hits.
func (r *ScanResult) Cached() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Cached {
			n++
		}
	}
	return n
}

// Scan lists the sources under root and extracts facts from each file in
// parallel. Per-file failures are recorded in the result; only an
// unreadable root or a cancelled context is returned as an error.
func Scan(ctx context.Context, root string, opts Options) (*ScanResult, error) {
	opts = opts.withDefaults()
	tracer := trace.FromContext(ctx)
	parent := trace.ParentFromContext(ctx)

	paths, walkErrs, err := ListSources(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	base := root
	if info, statErr := os.Stat(root); statErr == nil && !info.IsDir() {
		base = filepath.Dir(root)
	}
	res := &ScanResult{
		Root:       root,
		FileSet:    source.NewFileSetWithBase(base),
		Files:      make([]FileResult, len(paths)),
		WalkErrors: walkErrs,
		Bag:        diag.NewBag(opts.MaxDiagnostics),
	}
	if len(paths) == 0 {
		return res, nil
	}

	// Загрузка последовательная: FileSet.Add не потокобезопасен.
	for i, path := range paths {
		res.Files[i].Path = path
		id, loadErr := res.FileSet.Load(path)
		if loadErr != nil {
			// пустой виртуальный файл, чтобы диагностика указывала на путь
			res.Files[i].FileID = res.FileSet.AddVirtual(path, nil)
			res.Files[i].Err = errs.NewIOError("read", path, loadErr)
			continue
		}
		res.Files[i].FileID = id
		res.Files[i].Loaded = true
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	bags := make([]*diag.Bag, len(paths))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr := &res.Files[i]
			bags[i] = diag.NewBag(0)
			if fr.Loaded {
				scanFile(res.FileSet, fr, bags[i], opts.Cache, tracer, parent)
			} else {
				diag.ReportError(diag.BagReporter{Bag: bags[i]}, diag.IOLoadFileError, source.Span{File: fr.FileID}, "failed to load file: "+fr.Err.Error()).Emit()
			}
			if opts.OnFile != nil {
				opts.OnFile(FileEvent{
					Path:   fr.Path,
					Done:   int(done.Add(1)),
					Total:  len(paths),
					Cached: fr.Cached,
					Failed: fr.Err != nil,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	// barrier: merge in file order
	for _, b := range bags {
		res.Bag.Merge(b)
	}
	return res, nil
}

func scanFile(fileSet *source.FileSet, fr *FileResult, bag *diag.Bag, cache *DiskCache, tracer trace.Tracer, parent uint64) {
	file := fileSet.Get(fr.FileID)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+file.FormatPath("relative", fileSet.BaseDir()), parent)

	facts, hit := extractFacts(file, cache, func(what string, err error) {
		trace.Point(tracer, trace.ScopeFile, what, err.Error(), span.ID())
	})
	fr.Facts = facts
	fr.Cached = hit

	if !facts.Parsed() {
		rep := diag.BagReporter{Bag: bag}
		for _, p := range facts.Problems {
			sp := source.Span{File: file.ID, Start: p.Start, End: p.End}
			diag.ReportError(rep, diag.Code(p.Code), sp, p.Message).Emit()
		}
		fr.Err = parseError(fileSet, file, &facts)
	}

	span.WithExtra("tokens", strconv.Itoa(facts.Tokens)).
		WithExtra("cached", strconv.FormatBool(hit)).
		End(statusDetail(fr.Err))
}

// extractFacts consults the cache before lexing. Cache failures are passed
// to onCacheErr and otherwise ignored.
func extractFacts(file *source.File, cache *DiskCache, onCacheErr func(string, error)) (decl.Facts, bool) {
	facts, hit, err := cache.Get(file.Hash)
	if err != nil && onCacheErr != nil {
		onCacheErr("cache-get", err)
	}
	if hit {
		return facts, true
	}
	facts = decl.Extract(file)
	if err := cache.Put(file.Hash, &facts); err != nil && onCacheErr != nil {
		onCacheErr("cache-put", err)
	}
	return facts, false
}

// parseError reports the first problem of an unparsable file.
func parseError(fileSet *source.FileSet, file *source.File, facts *decl.Facts) error {
	first := facts.Problems[0]
	at, _ := fileSet.Resolve(source.Span{File: file.ID, Start: first.Start, End: first.End})
	return errs.NewParseError(file.Path, at.Line, at.Col, first.Message, len(facts.Problems))
}

func statusDetail(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
