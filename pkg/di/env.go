package di

import "strings"

// Secrets holds the token for GitHub API authentication.
type Secrets struct {
	GitHubToken string
}

// SetFromEnv sets secrets from environment variables.
func (s *Secrets) SetFromEnv(getEnv func(string) string) {
	s.GitHubToken = getEnv("GHADRIFT_GITHUB_TOKEN")
	if s.GitHubToken == "" {
		s.GitHubToken = getEnv("GITHUB_TOKEN")
	}
}

// SetEnv populates flags from environment variables.
func SetEnv(flags *Flags, getEnv func(string) string) {
	trueS := "true"
	flags.IsGitHubActions = getEnv("GITHUB_ACTIONS") == trueS
	flags.KeyringEnabled = getEnv("GHADRIFT_KEYRING_ENABLED") == trueS
	flags.GitHubRepository = getEnv("GITHUB_REPOSITORY")
}

// repoFromEnv splits GITHUB_REPOSITORY into owner and name.
func repoFromEnv(repository string) (string, string) {
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" {
		return "", ""
	}
	return owner, name
}
