package driver

import (
	"context"
	"iter"

	"lintnames/internal/decl"
	"lintnames/internal/errs"
	"lintnames/internal/source"
)

// Declarations walks root lazily. Each range lists the tree again and lexes
// one file at a time, so the sequence is finite and restartable.
//
// Per-file failures are yielded as (nil, err) and the walk goes on; an
// unreadable root or cancellation ends it. References only cover the
// declaring file: tree-wide references need the barrier of Scan + BuildIndex.
func Declarations(ctx context.Context, root string, opts Options) iter.Seq2[*decl.Declaration, error] {
	opts = opts.withDefaults()
	return func(yield func(*decl.Declaration, error) bool) {
		paths, walkErrs, err := ListSources(ctx, root, opts)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, e := range walkErrs {
			if !yield(nil, e) {
				return
			}
		}

		fileSet := source.NewFileSetWithBase(root)
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			id, err := fileSet.Load(path)
			if err != nil {
				if !yield(nil, errs.NewIOError("read", path, err)) {
					return
				}
				continue
			}
			file := fileSet.Get(id)
			facts, _ := extractFacts(file, opts.Cache, nil)
			if !facts.Parsed() {
				if !yield(nil, parseError(fileSet, file, &facts)) {
					return
				}
				continue
			}
			for _, d := range facts.Declarations {
				out := newDeclaration(fileSet, file, d)
				for _, ident := range facts.Idents {
					if ident.Name == d.Name && ident.Start != d.Start {
						out.References = append(out.References, decl.NewSite(fileSet, file, ident.Start, ident.End, ident.Spelling()))
					}
				}
				if !yield(out, nil) {
					return
				}
			}
			// контент больше не нужен
			file.Content = nil
		}
	}
}
