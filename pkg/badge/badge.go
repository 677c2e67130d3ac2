// Package badge fetches Dependabot compatibility scores.
// The score estimates how likely an update from one version to another passes CI,
// and is scraped from the SVG badge Dependabot renders.
package badge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/ghadrift/ghadrift/pkg/cache"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

const endpoint = "https://dependabot-badges.githubapp.com/badges/compatibility_score"

// Threshold is the lowest score rendered as a positive badge.
const Threshold = 80

const unknownValue = "unknown"

// Score is a compatibility percentage. The zero value is unknown.
type Score struct {
	Value int
	Known bool
}

// Unknown is the score used when no percentage is available.
var Unknown = Score{} //nolint:gochecknoglobals

func (s Score) String() string {
	if !s.Known {
		return "Unknown"
	}
	return strconv.Itoa(s.Value) + "%"
}

// Good reports whether the score is known and at least Threshold.
func (s Score) Good() bool {
	return s.Known && s.Value >= Threshold
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Cache interface {
	Get(key cache.Key) (string, bool, error)
	Set(key cache.Key, value string) error
}

type Scorer struct {
	client   HTTPClient
	cache    Cache
	endpoint string
}

func New(client HTTPClient, c Cache) *Scorer {
	return &Scorer{
		client:   client,
		cache:    c,
		endpoint: endpoint,
	}
}

// URL returns the badge URL for an update of repo from current to latest.
func (s *Scorer) URL(repo, current, latest string) string {
	q := url.Values{}
	q.Set("dependency-name", repo)
	q.Set("package-manager", "github_actions")
	q.Set("previous-version", current)
	q.Set("new-version", latest)
	return s.endpoint + "?" + q.Encode()
}

// Score returns the compatibility score of an update.
// Failures never stop a scan: they are logged and degrade to Unknown.
// Only answers from the badge service are cached, so a network error is retried next run.
func (s *Scorer) Score(ctx context.Context, logE *logrus.Entry, repo, current, latest string) Score {
	key := cache.NewKey(cache.KindCompatibility, repo, current, latest)
	if v, ok, err := s.cache.Get(key); err != nil {
		logerr.WithError(logE, err).Debug("read the compatibility score from cache")
	} else if ok {
		return decode(v)
	}
	body, err := s.fetch(ctx, s.URL(repo, current, latest))
	if err != nil {
		logerr.WithError(logE, err).Debug("fetch the compatibility badge")
		return Unknown
	}
	score := Parse(body)
	if err := s.cache.Set(key, encode(score)); err != nil {
		logerr.WithError(logE, err).Debug("cache the compatibility score")
	}
	return score
}

func (s *Scorer) fetch(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create a request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send a request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status code isn't 200: %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read a response body: %w", err)
	}
	return string(b), nil
}

var scorePattern = regexp.MustCompile(`(\d+)%`)

// Parse extracts the first percentage from a badge.
func Parse(svg string) Score {
	m := scorePattern.FindStringSubmatch(svg)
	if m == nil {
		return Unknown
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Unknown
	}
	return Score{Value: n, Known: true}
}

func encode(s Score) string {
	if !s.Known {
		return unknownValue
	}
	return strconv.Itoa(s.Value)
}

func decode(v string) Score {
	n, err := strconv.Atoi(v)
	if err != nil {
		return Unknown
	}
	return Score{Value: n, Known: true}
}
