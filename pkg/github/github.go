// Package github creates the GitHub API client.
// The token is read from GHADRIFT_GITHUB_TOKEN or GITHUB_TOKEN, or from the OS keyring
// if GHADRIFT_KEYRING_ENABLED is true. Without a token the API is called anonymously.
package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v74/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

type (
	Client            = github.Client
	ErrorResponse     = github.ErrorResponse
	NewPullRequest    = github.NewPullRequest
	PullRequest       = github.PullRequest
	Repository        = github.Repository
	RepositoryRelease = github.RepositoryRelease
	Response          = github.Response
)

// New returns a GitHub API client.
func New(ctx context.Context, logE *logrus.Entry, token string, keyringEnabled bool) *Client {
	return github.NewClient(getHTTPClientForGitHub(ctx, logE, token, keyringEnabled))
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return github.Ptr(v)
}

func getHTTPClientForGitHub(ctx context.Context, logE *logrus.Entry, token string, keyringEnabled bool) *http.Client {
	if token != "" {
		return oauth2.NewClient(ctx, oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		))
	}
	if keyringEnabled {
		return oauth2.NewClient(ctx, NewKeyringTokenSource(logE))
	}
	return http.DefaultClient
}
