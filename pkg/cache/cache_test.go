package cache_test

import (
	"testing"
	"time"

	"github.com/ghadrift/ghadrift/pkg/cache"
	"github.com/spf13/afero"
)

func TestCache_GetSet(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	c := cache.New(fs, "/cache")
	key := cache.NewKey(cache.KindLatestRelease, "actions/checkout")

	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("empty cache must miss: ok=%v err=%v", ok, err)
	}
	if err := c.Set(key, "v4.2.2"); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("wanted a hit")
	}
	if got != "v4.2.2" {
		t.Fatalf("wanted v4.2.2, got %s", got)
	}
}

func TestCache_expired(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		age  time.Duration
		hit  bool
	}{
		{name: "fresh", age: time.Minute, hit: true},
		{name: "just inside the window", age: cache.TTL - time.Second, hit: true},
		{name: "expired", age: cache.TTL + time.Second, hit: false},
		{name: "very old", age: 30 * 24 * time.Hour, hit: false},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			c := cache.New(fs, "/cache")
			key := cache.NewKey(cache.KindCompatibility, "actions/checkout", "2", "4")
			if err := c.Set(key, "79"); err != nil {
				t.Fatal(err)
			}
			mtime := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			if err := fs.Chtimes("/cache/"+key.FileName(), mtime, mtime); err != nil {
				t.Fatal(err)
			}
			c.SetNow(func() time.Time { return mtime.Add(d.age) })
			got, ok, err := c.Get(key)
			if err != nil {
				t.Fatal(err)
			}
			if ok != d.hit {
				t.Fatalf("wanted hit=%v, got %v", d.hit, ok)
			}
			if ok && got != "79" {
				t.Fatalf("wanted 79, got %s", got)
			}
		})
	}
}

func TestKey_FileName(t *testing.T) {
	t.Parallel()
	a := cache.NewKey(cache.KindCommitSHA, "actions/checkout", "v4")
	if a.FileName() != cache.NewKey(cache.KindCommitSHA, "actions/checkout", "v4").FileName() {
		t.Fatal("the file name must be deterministic")
	}
	others := []cache.Key{
		cache.NewKey(cache.KindLatestRelease, "actions/checkout", "v4"),
		cache.NewKey(cache.KindCommitSHA, "actions", "checkout/v4"),
		cache.NewKey(cache.KindCommitSHA, "actions/checkout", "v3"),
	}
	for _, b := range others {
		if a.FileName() == b.FileName() {
			t.Fatalf("%v and %v must not collide", a, b)
		}
	}
}

func TestCache_Prune(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	c := cache.New(fs, "/cache")
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	c.SetNow(func() time.Time { return now })
	fresh := cache.NewKey(cache.KindLatestRelease, "actions/checkout")
	stale := cache.NewKey(cache.KindLatestRelease, "actions/setup-go")
	for _, k := range []cache.Key{fresh, stale} {
		if err := c.Set(k, "v1"); err != nil {
			t.Fatal(err)
		}
	}
	if err := afero.WriteFile(fs, "/cache/README", []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := now.Add(-48 * time.Hour)
	if err := fs.Chtimes("/cache/"+stale.FileName(), old, old); err != nil {
		t.Fatal(err)
	}
	if err := fs.Chtimes("/cache/"+fresh.FileName(), now, now); err != nil {
		t.Fatal(err)
	}

	n, err := c.Prune(false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("wanted 1 removed entry, got %d", n)
	}
	if _, ok, _ := c.Get(fresh); !ok {
		t.Fatal("the fresh entry must be kept")
	}

	n, err = c.Prune(true)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("wanted 1 removed entry, got %d", n)
	}
	if f, _ := afero.Exists(fs, "/cache/README"); !f {
		t.Fatal("unrelated files must be kept")
	}
}

func TestCache_PruneMissingDir(t *testing.T) {
	t.Parallel()
	c := cache.New(afero.NewMemMapFs(), "/nonexistent")
	n, err := c.Prune(true)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("wanted 0, got %d", n)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Parallel()
	dir, err := cache.DefaultDir(func(k string) string {
		if k == "GHADRIFT_CACHE_DIR" {
			return "/tmp/ghadrift-cache"
		}
		return ""
	})
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/ghadrift-cache" {
		t.Fatalf("wanted /tmp/ghadrift-cache, got %s", dir)
	}
}
