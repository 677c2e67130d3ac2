package di

import (
	"io"

	"github.com/ghadrift/ghadrift/pkg/cli/flag"
)

// Flags holds all command-line flags and environment variables of the scan.
type Flags struct {
	*flag.GlobalFlags

	Update  bool
	Push    bool
	Verbose bool
	Format  string

	RepoOwner string
	RepoName  string
	Base      string

	IsGitHubActions  bool
	KeyringEnabled   bool
	GitHubRepository string

	PWD     string
	Version string
	Args    []string

	Stdout io.Writer
	Stderr io.Writer
}

// Repo returns the repository pull requests are opened against.
// --repo-owner and --repo-name take precedence over GITHUB_REPOSITORY.
// Empty values mean the origin remote is used.
func (f *Flags) Repo() (string, string) {
	if f.RepoOwner != "" && f.RepoName != "" {
		return f.RepoOwner, f.RepoName
	}
	owner, name := repoFromEnv(f.GitHubRepository)
	if f.RepoOwner != "" {
		owner = f.RepoOwner
	}
	if f.RepoName != "" {
		name = f.RepoName
	}
	return owner, name
}
