// Package config loads .lintnames.toml.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"

	"lintnames/internal/rules"
)

// FileName is the name looked up while walking up from the scan root.
const FileName = ".lintnames.toml"

// Config mirrors the TOML layout.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Rules  RulesConfig  `toml:"rules"`
	Report ReportConfig `toml:"report"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `toml:"-"`
}

type ScanConfig struct {
	Extensions           []string `toml:"extensions"`
	VendorDirs           []string `toml:"vendor_dirs"`
	Exclude              []string `toml:"exclude"`
	SkipDeclarationFiles bool     `toml:"skip_declaration_files"`
	Jobs                 int      `toml:"jobs"`
	Cache                bool     `toml:"cache"`
}

type RulesConfig struct {
	Disabled []string `toml:"disabled"`
	Allow    []string `toml:"allow"`
}

type ReportConfig struct {
	JSON   string `toml:"json"`
	Format string `toml:"format"`
}

// Formats accepted by [report].format and --format.
var Formats = []string{"pretty", "short", "json", "sarif"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Extensions: []string{".ts", ".tsx", ".mts", ".cts"},
			VendorDirs: []string{"node_modules", "bower_components", "jspm_packages", "vendor", "third_party", ".git"},
		},
		Report: ReportConfig{Format: "pretty"},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to resolve start directory")
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, errors.Wrapf(err, "failed to stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads path on top of the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, errors.Newf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Resolve loads the explicit path if given, otherwise the nearest config
// above root, otherwise the defaults.
func Resolve(explicit, root string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(root)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks values that TOML decoding cannot.
func (c *Config) Validate() error {
	for i, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Scan.Extensions[i] = "." + ext
		}
	}
	for _, pattern := range c.Scan.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Newf("[scan].exclude: invalid glob %q", pattern)
		}
	}
	if c.Scan.Jobs < 0 {
		return errors.Newf("[scan].jobs must not be negative, got %d", c.Scan.Jobs)
	}
	for _, id := range c.Rules.Disabled {
		if _, ok := rules.Lookup(id); !ok {
			return errors.Newf("[rules].disabled: unknown rule %q", id)
		}
	}
	if c.Report.Format != "" && !slices.Contains(Formats, c.Report.Format) {
		return errors.Newf("[report].format: unknown format %q (want one of %s)", c.Report.Format, strings.Join(Formats, ", "))
	}
	return nil
}

// Encode renders c as TOML, used by the init command.
func (c Config) Encode() ([]byte, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return []byte(b.String()), nil
}
