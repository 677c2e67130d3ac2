// Package cache stores API and git lookups on disk so repeated scans within a day
// don't hit GitHub again.
// Each entry is a single file whose content is the raw value and whose
// modification time is the entry's timestamp. Entries older than TTL are misses.
// There is no locking: concurrent processes may race on a write, which is harmless
// because a key always maps to the same value.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// TTL is the validity window of an entry.
const TTL = 24 * time.Hour

const (
	dirPermission  os.FileMode = 0o755
	filePermission os.FileMode = 0o644
)

// Kind is the type of a cached query.
type Kind int

const (
	KindLatestRelease Kind = iota + 1
	KindDefaultBranch
	KindCommitSHA
	KindAheadCount
	KindCompatibility
)

func (k Kind) String() string {
	switch k {
	case KindLatestRelease:
		return "latest-release"
	case KindDefaultBranch:
		return "default-branch"
	case KindCommitSHA:
		return "commit-sha"
	case KindAheadCount:
		return "ahead-count"
	case KindCompatibility:
		return "compatibility"
	default:
		return "unknown"
	}
}

// Key identifies a cached query by its kind and parameters.
type Key struct {
	Kind   Kind
	Params []string
}

// NewKey returns a key of the given kind.
func NewKey(kind Kind, params ...string) Key {
	return Key{Kind: kind, Params: params}
}

// FileName returns the name of the file backing the key.
// The parameters are joined with NUL so that ("a/b", "c") and ("a", "b/c") never collide.
func (k Key) FileName() string {
	h := sha256.New()
	h.Write([]byte(k.Kind.String()))
	for _, p := range k.Params {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return k.Kind.String() + "-" + hex.EncodeToString(h.Sum(nil))
}

type Cache struct {
	fs  afero.Fs
	dir string
	ttl time.Duration
	now func() time.Time
}

// New returns a cache rooted at dir.
func New(fs afero.Fs, dir string) *Cache {
	return &Cache{
		fs:  fs,
		dir: dir,
		ttl: TTL,
		now: time.Now,
	}
}

// SetNow replaces the clock. It is used by tests.
func (c *Cache) SetNow(now func() time.Time) {
	c.now = now
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) path(key Key) string {
	return filepath.Join(c.dir, key.FileName())
}

// Get returns the value of key. ok is false if the entry doesn't exist or is expired.
func (c *Cache) Get(key Key) (string, bool, error) {
	p := c.path(key)
	info, err := c.fs.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get a cache file stat: %w", err)
	}
	if c.expired(info) {
		return "", false, nil
	}
	b, err := afero.ReadFile(c.fs, p)
	if err != nil {
		return "", false, fmt.Errorf("read a cache file: %w", err)
	}
	return string(b), true, nil
}

// Set stores value under key, refreshing its timestamp.
func (c *Cache) Set(key Key, value string) error {
	if err := c.fs.MkdirAll(c.dir, dirPermission); err != nil {
		return fmt.Errorf("create a cache directory: %w", err)
	}
	if err := afero.WriteFile(c.fs, c.path(key), []byte(value), filePermission); err != nil {
		return fmt.Errorf("write a cache file: %w", err)
	}
	return nil
}

func (c *Cache) expired(info fs.FileInfo) bool {
	return c.now().Sub(info.ModTime()) > c.ttl
}

// Prune removes expired entries, or every entry if all is true.
// It returns the number of removed files.
func (c *Cache) Prune(all bool) (int, error) {
	entries, err := afero.ReadDir(c.fs, c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read the cache directory: %w", err)
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isEntryName(entry.Name()) {
			continue
		}
		if !all && !c.expired(entry) {
			continue
		}
		if err := c.fs.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove a cache file %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

func isEntryName(name string) bool {
	for _, k := range []Kind{KindLatestRelease, KindDefaultBranch, KindCommitSHA, KindAheadCount, KindCompatibility} {
		if strings.HasPrefix(name, k.String()+"-") {
			return true
		}
	}
	return false
}

// DefaultDir returns $GHADRIFT_CACHE_DIR, or ghadrift under the user cache directory.
func DefaultDir(getEnv func(string) string) (string, error) {
	if dir := getEnv("GHADRIFT_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get the user cache directory: %w", err)
	}
	return filepath.Join(dir, "ghadrift"), nil
}
