package cachecmd_test

import (
	"testing"
	"time"

	"github.com/ghadrift/ghadrift/pkg/cache"
	"github.com/ghadrift/ghadrift/pkg/controller/cachecmd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func TestController_Clean(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	fs := afero.NewMemMapFs()
	c := cache.New(fs, "/cache")
	fresh := cache.NewKey(cache.KindLatestRelease, "actions/checkout")
	stale := cache.NewKey(cache.KindDefaultBranch, "actions/checkout")
	for _, k := range []cache.Key{fresh, stale} {
		if err := c.Set(k, "v4"); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-2 * cache.TTL)
	if err := fs.Chtimes("/cache/"+stale.FileName(), old, old); err != nil {
		t.Fatal(err)
	}
	ctrl := cachecmd.New(c)
	if err := ctrl.Clean(logE, false); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(fresh); !ok {
		t.Fatal("a fresh entry must be kept")
	}
	if err := ctrl.Clean(logE, true); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(fresh); ok {
		t.Fatal("every entry must be removed")
	}
}
