package driver

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"lintnames/internal/decl"
)

// Bump when decl.Facts or the extractor changes meaning.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file facts keyed by content hash.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk record.
type DiskPayload struct {
	Schema uint16     `msgpack:"v"`
	Facts  decl.Facts `msgpack:"f"`
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "locate cache dir")
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create cache dir %s", dir)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key [32]byte) string {
	h := hex.EncodeToString(key[:])
	// два символа на подкаталог, чтобы не держать тысячи файлов в одной папке
	return filepath.Join(c.dir, "facts", h[:2], h+".mp")
}

// Put stores facts under key. The write goes through a temp file and rename.
func (c *DiskCache) Put(key [32]byte, facts *decl.Facts) error {
	if c == nil || facts == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // после rename файла уже нет

	if err := msgpack.NewEncoder(f).Encode(&DiskPayload{Schema: diskCacheSchemaVersion, Facts: *facts}); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get loads facts for key. A missing entry or a stale schema is a miss.
func (c *DiskCache) Get(key [32]byte) (decl.Facts, bool, error) {
	if c == nil {
		return decl.Facts{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return decl.Facts{}, false, nil
		}
		return decl.Facts{}, false, err
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return decl.Facts{}, false, errors.Wrap(err, "decode cache entry")
	}
	if payload.Schema != diskCacheSchemaVersion {
		return decl.Facts{}, false, nil
	}
	return payload.Facts, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "facts"))
}
