package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/ghadrift/ghadrift/pkg/cache"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func newTestCache() *cache.Cache {
	return cache.New(afero.NewMemMapFs(), "/cache")
}

func TestResolver_LatestVersion(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	data := []struct {
		name  string
		repos *mockRepositoriesService
		exp   string
		isErr func(error) bool
	}{
		{
			name:  "latest release",
			repos: &mockRepositoriesService{releases: map[string]string{"actions/checkout": "v4.2.2"}},
			exp:   "v4.2.2",
		},
		{
			name:  "default branch",
			repos: &mockRepositoriesService{branches: map[string]string{"actions/checkout": "main"}},
			exp:   "main",
		},
		{
			name:  "no data",
			repos: &mockRepositoriesService{},
			isErr: func(err error) bool { return errors.Is(err, ErrNoData) },
		},
		{
			name:  "transport error",
			repos: &mockRepositoriesService{err: errNetwork},
			isErr: func(err error) bool { return errors.Is(err, errNetwork) && !errors.Is(err, ErrNoData) },
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			r := NewResolver(d.repos, &mockGit{}, newTestCache())
			v, err := r.LatestVersion(context.Background(), logE, "actions", "checkout")
			if d.isErr != nil {
				if !d.isErr(err) {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if v != d.exp {
				t.Fatalf("wanted %s, got %s", d.exp, v)
			}
		})
	}
}

func TestResolver_LatestVersionCache(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	c := newTestCache()
	repos := &mockRepositoriesService{branches: map[string]string{"foo/bar": "develop"}}
	r := NewResolver(repos, &mockGit{}, c)
	for range 2 {
		v, err := r.LatestVersion(context.Background(), logE, "foo", "bar")
		if err != nil {
			t.Fatal(err)
		}
		if v != "develop" {
			t.Fatalf("wanted develop, got %s", v)
		}
	}
	// both the missing release and the default branch are cached
	if diff := cmp.Diff([]string{"GetLatestRelease foo/bar", "Get foo/bar"}, repos.calls); diff != "" {
		t.Fatal(diff)
	}
}

func TestResolver_ErrorIsNotCached(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	c := newTestCache()
	repos := &mockRepositoriesService{err: errNetwork}
	r := NewResolver(repos, &mockGit{}, c)
	if _, err := r.LatestVersion(context.Background(), logE, "actions", "checkout"); err == nil {
		t.Fatal("error must be returned")
	}
	repos.err = nil
	repos.releases = map[string]string{"actions/checkout": "v4"}
	v, err := r.LatestVersion(context.Background(), logE, "actions", "checkout")
	if err != nil {
		t.Fatal(err)
	}
	if v != "v4" {
		t.Fatalf("wanted v4, got %s", v)
	}
}

func TestResolver_CommitSHA(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	sha := "8e5e7e5ab8b370d6c329ec480221332ada57f0ab"
	repos := &mockRepositoriesService{commits: map[string]string{"actions/checkout@v4": sha}}
	r := NewResolver(repos, &mockGit{}, newTestCache())
	got, err := r.CommitSHA(context.Background(), logE, "actions", "checkout", "v4")
	if err != nil {
		t.Fatal(err)
	}
	if got != sha {
		t.Fatalf("wanted %s, got %s", sha, got)
	}
	if _, err := r.CommitSHA(context.Background(), logE, "actions", "checkout", "v9"); !errors.Is(err, ErrNoData) {
		t.Fatalf("wanted ErrNoData, got %v", err)
	}
}

func TestResolver_AheadCount(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	git := &mockGit{ahead: map[string]int{"actions/checkout@aaa..bbb": 5}}
	r := NewResolver(&mockRepositoriesService{}, git, newTestCache())
	for range 2 {
		n, err := r.AheadCount(context.Background(), logE, "actions", "checkout", "aaa", "bbb")
		if err != nil {
			t.Fatal(err)
		}
		if n != 5 {
			t.Fatalf("wanted 5, got %d", n)
		}
	}
	if git.aheadHits != 1 {
		t.Fatalf("the second call must hit the cache, got %d calls", git.aheadHits)
	}
	n, err := r.AheadCount(context.Background(), logE, "actions", "checkout", "bbb", "bbb")
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || git.aheadHits != 1 {
		t.Fatal("the same commit must not be cloned")
	}
}
