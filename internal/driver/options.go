package driver

import (
	"lintnames/internal/config"
)

// FileEvent is sent to a FileObserver after a file has been processed.
type FileEvent struct {
	Path   string
	Done   int // files finished so far, including this one
	Total  int
	Cached bool
	Failed bool
}

// FileObserver is called from scan workers; it must be goroutine-safe.
type FileObserver func(FileEvent)

// Options control what Scan and Declarations look at.
type Options struct {
	Extensions           []string
	VendorDirs           []string
	Exclude              []string
	SkipDeclarationFiles bool

	// Jobs bounds the worker pool; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache may be nil.
	Cache *DiskCache
	// MaxDiagnostics caps the scan bag; 0 is unlimited.
	MaxDiagnostics int

	OnFile FileObserver
}

// OptionsFromConfig copies the [scan] table. The cache is left for the
// caller to open.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Extensions:           cfg.Scan.Extensions,
		VendorDirs:           cfg.Scan.VendorDirs,
		Exclude:              cfg.Scan.Exclude,
		SkipDeclarationFiles: cfg.Scan.SkipDeclarationFiles,
		Jobs:                 cfg.Scan.Jobs,
	}
}

func (o Options) withDefaults() Options {
	def := config.Default()
	if len(o.Extensions) == 0 {
		o.Extensions = def.Scan.Extensions
	}
	if o.VendorDirs == nil {
		o.VendorDirs = def.Scan.VendorDirs
	}
	return o
}
