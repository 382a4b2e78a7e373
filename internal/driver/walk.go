package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"lintnames/internal/errs"
)

// declarationSuffixes are TypeScript declaration files: ambient typings
// usually generated or shipped by third parties.
var declarationSuffixes = []string{".d.ts", ".d.mts", ".d.cts"}

// IsDeclarationFile reports whether path is a *.d.ts style file.
func IsDeclarationFile(path string) bool {
	base := filepath.Base(path)
	for _, suf := range declarationSuffixes {
		if strings.HasSuffix(base, suf) {
			return true
		}
	}
	return false
}

// ListSources returns the sorted source files under root. Unreadable
// subdirectories are skipped and returned as non-fatal walk errors; an
// unreadable root is fatal.
func ListSources(ctx context.Context, root string, opts Options) ([]string, []error, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, errs.RootError(root, err)
	}
	if !info.IsDir() {
		if opts.selects(root, root) {
			return []string{root}, nil, nil
		}
		return nil, nil, nil
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, nil, errs.RootError(root, err)
	}

	var (
		files   []string
		walkErr []error
	)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return errs.RootError(root, err)
			}
			walkErr = append(walkErr, errs.NewIOError("walk", path, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && opts.skipsDir(root, path, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if opts.selects(root, path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, walkErr, err
	}

	sort.Strings(files)
	return files, walkErr, nil
}

func (o Options) skipsDir(root, path, name string) bool {
	if slices.Contains(o.VendorDirs, name) {
		return true
	}
	return o.excluded(root, path)
}

func (o Options) selects(root, path string) bool {
	if !o.hasExtension(path) {
		return false
	}
	if o.SkipDeclarationFiles && IsDeclarationFile(path) {
		return false
	}
	return !o.excluded(root, path)
}

func (o Options) hasExtension(path string) bool {
	for _, ext := range o.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// excluded matches the root-relative slash path against every exclude glob.
func (o Options) excluded(root, path string) bool {
	if len(o.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range o.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
