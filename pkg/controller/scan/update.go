package scan

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/ghadrift/ghadrift/pkg/github"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// update is a set of findings sharing an action and a target version.
// They are committed on the same branch.
type update struct {
	branch   string
	findings []*Finding
}

// BranchName returns the branch updating an action to the latest version.
func BranchName(f *Finding) string {
	return fmt.Sprintf("ghadrift/%s-%s-%s", f.Ref.Owner, f.Ref.Repo, f.Latest)
}

// CommitMessage returns the commit message and pull request title of an update.
func CommitMessage(f *Finding) string {
	return fmt.Sprintf("chore(deps): update %s to %s", f.Ref.FullName(), f.Latest)
}

// groupUpdates groups version pin findings by branch, in the order they were found.
// SHA pins are never updated.
func groupUpdates(findings []*Finding) []*update {
	updates := []*update{}
	m := map[string]*update{}
	for _, f := range findings {
		if f.IsSHA() {
			continue
		}
		branch := BranchName(f)
		u, ok := m[branch]
		if !ok {
			u = &update{branch: branch}
			m[branch] = u
			updates = append(updates, u)
		}
		u.findings = append(u.findings, f)
	}
	return updates
}

const detachedHead = "HEAD"

// update commits each update on its own branch created from the current branch.
// With Push, the branch is pushed and a pull request is opened.
// Nothing is rolled back on failure: the branch and the commit already made are left as they are.
func (c *Controller) update(ctx context.Context, logE *logrus.Entry, findings []*Finding) error {
	updates := groupUpdates(findings)
	if len(updates) == 0 {
		logE.Debug("nothing to update")
		return nil
	}
	original, err := c.original(ctx)
	if err != nil {
		return err
	}
	var owner, repo string
	if c.param.Push {
		owner, repo, err = c.pullRequestRepo(ctx)
		if err != nil {
			return err
		}
	}
	for _, u := range updates {
		logE := logE.WithField("branch", u.branch)
		if err := c.applyUpdate(ctx, logE, u, original, owner, repo); err != nil {
			return fmt.Errorf("update %s: %w", u.findings[0].Ref.FullName(), logerr.WithFields(err, logrus.Fields{
				"branch": u.branch,
			}))
		}
	}
	return nil
}

// original returns what each update branch is created from.
// On a detached HEAD it is the commit, since checking out "HEAD" would stay on the update branch.
func (c *Controller) original(ctx context.Context) (string, error) {
	branch, err := c.git.CurrentBranch(ctx, c.param.PWD)
	if err != nil {
		return "", fmt.Errorf("get the current branch: %w", err)
	}
	if branch != detachedHead {
		return branch, nil
	}
	sha, err := c.git.HeadCommit(ctx, c.param.PWD)
	if err != nil {
		return "", fmt.Errorf("get the commit of the detached HEAD: %w", err)
	}
	return sha, nil
}

func (c *Controller) pullRequestRepo(ctx context.Context) (string, string, error) {
	if c.param.RepoOwner != "" && c.param.RepoName != "" {
		return c.param.RepoOwner, c.param.RepoName, nil
	}
	owner, repo, err := c.git.RemoteRepo(ctx, c.param.PWD)
	if err != nil {
		return "", "", fmt.Errorf("get the repository to open pull requests: %w", err)
	}
	return owner, repo, nil
}

func (c *Controller) applyUpdate(ctx context.Context, logE *logrus.Entry, u *update, original, owner, repo string) error {
	dir := c.param.PWD
	if err := c.git.CheckoutNewBranch(ctx, dir, u.branch); err != nil {
		return err //nolint:wrapcheck
	}
	files := []string{}
	seen := map[string]struct{}{}
	for _, f := range u.findings {
		// the same pin may appear on several lines of a file, and rewrite replaces all of them
		k := f.File + "\x00" + f.Ref.Ref
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		changed, err := c.rewrite(f)
		if err != nil {
			return err
		}
		if !changed {
			logE.WithField("workflow_file", f.File).Warn("the action isn't found in the workflow file")
			continue
		}
		if !slices.Contains(files, f.File) {
			files = append(files, f.File)
		}
	}
	if len(files) == 0 {
		return c.git.Checkout(ctx, dir, original) //nolint:wrapcheck
	}
	head := u.findings[0]
	if err := c.git.Commit(ctx, dir, CommitMessage(head), files...); err != nil {
		return err //nolint:wrapcheck
	}
	logE.Info("committed an update")
	if c.param.Push {
		if err := c.git.Push(ctx, dir, u.branch); err != nil {
			return err //nolint:wrapcheck
		}
		pr, _, err := c.prs.Create(ctx, owner, repo, &github.NewPullRequest{
			Title: github.Ptr(CommitMessage(head)),
			Head:  github.Ptr(u.branch),
			Base:  github.Ptr(c.base()),
			Body:  github.Ptr(pullRequestBody(u)),
		})
		if err != nil {
			return fmt.Errorf("create a pull request: %w", err)
		}
		logE.WithField("pull_request", pr.GetHTMLURL()).Info("created a pull request")
	}
	return c.git.Checkout(ctx, dir, original) //nolint:wrapcheck
}

func (c *Controller) base() string {
	if c.param.Base != "" {
		return c.param.Base
	}
	if c.cfg.Base != "" {
		return c.cfg.Base
	}
	return defaultBase
}

// rewrite replaces the pinned version of the finding with the latest version in place.
// It reports whether the file was changed.
func (c *Controller) rewrite(f *Finding) (bool, error) {
	p := c.abs(f.File)
	info, err := c.fs.Stat(p)
	if err != nil {
		return false, fmt.Errorf("get a workflow file stat: %w", err)
	}
	b, err := afero.ReadFile(c.fs, p)
	if err != nil {
		return false, fmt.Errorf("read a workflow file: %w", err)
	}
	content := Replace(string(b), f.Ref.Path, f.Ref.Ref, f.Latest)
	if content == string(b) {
		return false, nil
	}
	if err := afero.WriteFile(c.fs, p, []byte(content), info.Mode()); err != nil {
		return false, fmt.Errorf("write a workflow file: %w", err)
	}
	return true, nil
}

// Replace replaces every path@current in content with path@latest.
// A match must be preceded by whitespace or a quote, or start a line, and must be
// followed by whitespace, a quote, a comment, or the end of a line.
// So actions/checkout@v2 doesn't match actions/checkout@v2.1.0.
func Replace(content, path, current, latest string) string {
	pattern := regexp.MustCompile(`(?m)(^|[\s"'])` + regexp.QuoteMeta(path+"@"+current) + `([\s"'#]|$)`)
	return pattern.ReplaceAllString(content, "${1}"+strings.ReplaceAll(path+"@"+latest, "$", "$$")+"${2}")
}

func pullRequestBody(u *update) string {
	head := u.findings[0]
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "Update [%s](https://github.com/%s) from `%s` to `%s`.\n\n",
		head.Ref.FullName(), head.Ref.FullName(), head.Ref.Ref, head.Latest)
	fmt.Fprintf(buf, "- Release notes: %s\n", head.ReleaseURL())
	fmt.Fprintf(buf, "- Compatibility score: %s\n\n", head.Score)
	buf.WriteString("Updated files:\n\n")
	for _, f := range u.findings {
		fmt.Fprintf(buf, "- %s:%d\n", f.File, f.Line)
	}
	buf.WriteString("\nThis pull request was created by [ghadrift](https://github.com/ghadrift/ghadrift).\n")
	return buf.String()
}
