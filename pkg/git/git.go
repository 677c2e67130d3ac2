// Package git runs the git command.
// It covers the few operations ghadrift needs: counting how far a pinned commit
// is behind a release, and branch/commit/push for update pull requests.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotFound is returned when git isn't installed.
var ErrNotFound = errors.New("git isn't found in PATH")

// Runner runs git with args in dir and returns stdout.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

type execRunner struct{}

var tokenPattern = regexp.MustCompile(`https://[^@/\s]+@`)

func (execRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := tokenPattern.ReplaceAllString(strings.TrimSpace(stderr.String()), "https://[REDACTED]@")
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
	}
	return stdout.String(), nil
}

type Client struct {
	runner  Runner
	baseURL string
	tempDir func() (string, error)
	remove  func(string) error
}

// New returns a client running the git command.
func New() *Client {
	return NewWithRunner(execRunner{})
}

// NewWithRunner returns a client running git through runner.
func NewWithRunner(runner Runner) *Client {
	return &Client{
		runner:  runner,
		baseURL: "https://github.com",
		tempDir: func() (string, error) {
			return os.MkdirTemp("", "ghadrift-")
		},
		remove: os.RemoveAll,
	}
}

// LookPath checks that git is installed using lookPath, which is usually exec.LookPath.
func LookPath(lookPath func(string) (string, error)) error {
	if _, err := lookPath("git"); err != nil {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return nil
}

// AheadCount returns the number of commits in target that aren't reachable from base.
// It makes a blobless clone of owner/repo into a scratch directory, fetches both commits,
// and removes the directory before returning.
func (c *Client) AheadCount(ctx context.Context, owner, repo, base, target string) (int, error) {
	dir, err := c.tempDir()
	if err != nil {
		return 0, fmt.Errorf("create a scratch directory: %w", err)
	}
	defer c.remove(dir) //nolint:errcheck

	u := fmt.Sprintf("%s/%s/%s.git", c.baseURL, owner, repo)
	if _, err := c.runner.Run(ctx, dir, "clone", "--quiet", "--bare", "--filter=blob:none", u, "."); err != nil {
		return 0, fmt.Errorf("clone a repository: %w", err)
	}
	if _, err := c.runner.Run(ctx, dir, "fetch", "--quiet", "origin", base, target); err != nil {
		return 0, fmt.Errorf("fetch commits: %w", err)
	}
	out, err := c.runner.Run(ctx, dir, "rev-list", "--count", base+".."+target)
	if err != nil {
		return 0, fmt.Errorf("count commits: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("parse the number of commits: %w", err)
	}
	return n, nil
}

// CurrentBranch returns the checked out branch of the repository in dir.
func (c *Client) CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := c.runner.Run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("get the current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// HeadCommit returns the commit SHA of HEAD of the repository in dir.
func (c *Client) HeadCommit(ctx context.Context, dir string) (string, error) {
	out, err := c.runner.Run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("get the commit of HEAD: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// CheckoutNewBranch creates branch and checks it out.
func (c *Client) CheckoutNewBranch(ctx context.Context, dir, branch string) error {
	if _, err := c.runner.Run(ctx, dir, "checkout", "-b", branch); err != nil {
		return fmt.Errorf("create a branch: %w", err)
	}
	return nil
}

// Checkout checks out an existing branch.
func (c *Client) Checkout(ctx context.Context, dir, branch string) error {
	if _, err := c.runner.Run(ctx, dir, "checkout", branch); err != nil {
		return fmt.Errorf("checkout a branch: %w", err)
	}
	return nil
}

// Commit stages files and commits them.
func (c *Client) Commit(ctx context.Context, dir, message string, files ...string) error {
	if _, err := c.runner.Run(ctx, dir, append([]string{"add", "--"}, files...)...); err != nil {
		return fmt.Errorf("stage files: %w", err)
	}
	if _, err := c.runner.Run(ctx, dir, "commit", "--quiet", "-m", message); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Push pushes branch to origin.
func (c *Client) Push(ctx context.Context, dir, branch string) error {
	if _, err := c.runner.Run(ctx, dir, "push", "--quiet", "-u", "origin", branch); err != nil {
		return fmt.Errorf("push a branch: %w", err)
	}
	return nil
}

// RemoteRepo returns the owner and name of the GitHub repository of origin.
func (c *Client) RemoteRepo(ctx context.Context, dir string) (string, string, error) {
	out, err := c.runner.Run(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		return "", "", fmt.Errorf("get the URL of origin: %w", err)
	}
	owner, repo, ok := ParseRemoteURL(strings.TrimSpace(out))
	if !ok {
		return "", "", fmt.Errorf("origin isn't a GitHub repository: %s", strings.TrimSpace(out))
	}
	return owner, repo, nil
}

var remotePattern = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`)

// ParseRemoteURL extracts owner and repository name from an HTTPS or SSH GitHub URL.
func ParseRemoteURL(u string) (string, string, bool) {
	m := remotePattern.FindStringSubmatch(u)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
