package scan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ghadrift/ghadrift/pkg/cache"
	"github.com/ghadrift/ghadrift/pkg/github"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// ErrNoData means GitHub answered but has nothing to compare against,
// e.g. a repository without releases whose metadata is also unavailable.
// Unlike a transport error it isn't worth retrying within a run.
var ErrNoData = errors.New("no data")

// Resolver looks up the latest version of actions through the cache.
// Only answers are cached. Errors, including API failures, are never cached.
type Resolver struct {
	repos RepositoriesService
	git   Git
	cache Cache
}

func NewResolver(repos RepositoriesService, git Git, c Cache) *Resolver {
	return &Resolver{
		repos: repos,
		git:   git,
		cache: c,
	}
}

func isNotFound(resp *github.Response) bool {
	return resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound
}

func (r *Resolver) cached(logE *logrus.Entry, key cache.Key, fetch func() (string, error)) (string, error) {
	if v, ok, err := r.cache.Get(key); err != nil {
		logerr.WithError(logE, err).WithField("cache_kind", key.Kind.String()).Debug("read a cache")
	} else if ok {
		return v, nil
	}
	v, err := fetch()
	if err != nil {
		return "", err
	}
	if err := r.cache.Set(key, v); err != nil {
		logerr.WithError(logE, err).WithField("cache_kind", key.Kind.String()).Debug("write a cache")
	}
	return v, nil
}

// LatestVersion returns the tag of the latest release.
// If the repository has no release, the default branch is returned instead.
func (r *Resolver) LatestVersion(ctx context.Context, logE *logrus.Entry, owner, repo string) (string, error) {
	tag, err := r.latestRelease(ctx, logE, owner, repo)
	if err != nil {
		return "", err
	}
	if tag != "" {
		return tag, nil
	}
	logE.Debug("no release is found, falling back to the default branch")
	branch, err := r.defaultBranch(ctx, logE, owner, repo)
	if err != nil {
		return "", err
	}
	if branch == "" {
		return "", ErrNoData
	}
	return branch, nil
}

func (r *Resolver) latestRelease(ctx context.Context, logE *logrus.Entry, owner, repo string) (string, error) {
	key := cache.NewKey(cache.KindLatestRelease, owner+"/"+repo)
	return r.cached(logE, key, func() (string, error) {
		release, resp, err := r.repos.GetLatestRelease(ctx, owner, repo)
		if err != nil {
			if isNotFound(resp) {
				return "", nil
			}
			return "", fmt.Errorf("get the latest release: %w", err)
		}
		return release.GetTagName(), nil
	})
}

func (r *Resolver) defaultBranch(ctx context.Context, logE *logrus.Entry, owner, repo string) (string, error) {
	key := cache.NewKey(cache.KindDefaultBranch, owner+"/"+repo)
	return r.cached(logE, key, func() (string, error) {
		repository, resp, err := r.repos.Get(ctx, owner, repo)
		if err != nil {
			if isNotFound(resp) {
				return "", nil
			}
			return "", fmt.Errorf("get a repository: %w", err)
		}
		return repository.GetDefaultBranch(), nil
	})
}

// CommitSHA returns the commit SHA of ref.
func (r *Resolver) CommitSHA(ctx context.Context, logE *logrus.Entry, owner, repo, ref string) (string, error) {
	key := cache.NewKey(cache.KindCommitSHA, owner+"/"+repo, ref)
	sha, err := r.cached(logE, key, func() (string, error) {
		sha, resp, err := r.repos.GetCommitSHA1(ctx, owner, repo, ref, "")
		if err != nil {
			if isNotFound(resp) {
				return "", nil
			}
			return "", fmt.Errorf("get a commit SHA: %w", err)
		}
		return sha, nil
	})
	if err != nil {
		return "", err
	}
	if sha == "" {
		return "", ErrNoData
	}
	return sha, nil
}

// AheadCount returns the number of commits target is ahead of current.
func (r *Resolver) AheadCount(ctx context.Context, logE *logrus.Entry, owner, repo, current, target string) (int, error) {
	if current == target {
		return 0, nil
	}
	key := cache.NewKey(cache.KindAheadCount, owner+"/"+repo, current, target)
	v, err := r.cached(logE, key, func() (string, error) {
		n, err := r.git.AheadCount(ctx, owner, repo, current, target)
		if err != nil {
			return "", fmt.Errorf("count commits: %w", err)
		}
		return strconv.Itoa(n), nil
	})
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse a cached ahead count: %w", err)
	}
	return n, nil
}
