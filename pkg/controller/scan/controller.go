// Package scan implements the core of ghadrift.
// It reads workflow files, resolves the latest version of each action they use,
// reports outdated actions grouped by file, and optionally commits updates on
// dedicated branches and opens pull requests for them.
// External systems (GitHub API, git, the compatibility badge service, the on-disk cache)
// are reached through the narrow interfaces declared here so that tests can replace them.
package scan

import (
	"context"
	"io"

	"github.com/ghadrift/ghadrift/pkg/badge"
	"github.com/ghadrift/ghadrift/pkg/cache"
	"github.com/ghadrift/ghadrift/pkg/config"
	"github.com/ghadrift/ghadrift/pkg/github"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Controller struct {
	repos     RepositoriesService
	prs       PullRequestsService
	git       Git
	scorer    Scorer
	fs        afero.Fs
	cfg       *config.Config
	cfgFinder ConfigFinder
	cfgReader ConfigReader
	resolver  *Resolver
	param     *Param
}

type RepositoriesService interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	GetCommitSHA1(ctx context.Context, owner, repo, ref, lastSHA string) (string, *github.Response, error)
}

type PullRequestsService interface {
	Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error)
}

type Git interface {
	AheadCount(ctx context.Context, owner, repo, base, target string) (int, error)
	CurrentBranch(ctx context.Context, dir string) (string, error)
	HeadCommit(ctx context.Context, dir string) (string, error)
	CheckoutNewBranch(ctx context.Context, dir, branch string) error
	Checkout(ctx context.Context, dir, branch string) error
	Commit(ctx context.Context, dir, message string, files ...string) error
	Push(ctx context.Context, dir, branch string) error
	RemoteRepo(ctx context.Context, dir string) (string, string, error)
}

type Scorer interface {
	Score(ctx context.Context, logE *logrus.Entry, repo, current, latest string) badge.Score
}

type Cache interface {
	Get(key cache.Key) (string, bool, error)
	Set(key cache.Key, value string) error
}

type ConfigFinder interface {
	Find(configFilePath string) (string, error)
}

type ConfigReader interface {
	Read(cfg *config.Config, configFilePath string) error
}

const (
	FormatText  = "text"
	FormatSARIF = "sarif"
)

const defaultBase = "main"

type Param struct {
	WorkflowFilePaths []string
	ConfigFilePath    string
	PWD               string
	Update            bool
	Push              bool
	Verbose           bool
	Format            string
	// RepoOwner and RepoName are the repository pull requests are opened against.
	// If empty, the origin remote is used.
	RepoOwner string
	RepoName  string
	Base      string
	Version   string
	Stdout    io.Writer
	Stderr    io.Writer
}

type Services struct {
	Repositories RepositoriesService
	PullRequests PullRequestsService
	Git          Git
	Scorer       Scorer
	Cache        Cache
}

func New(svc *Services, fs afero.Fs, cfgFinder ConfigFinder, cfgReader ConfigReader, param *Param) *Controller {
	return &Controller{
		repos:     svc.Repositories,
		prs:       svc.PullRequests,
		git:       svc.Git,
		scorer:    svc.Scorer,
		fs:        fs,
		cfg:       &config.Config{},
		cfgFinder: cfgFinder,
		cfgReader: cfgReader,
		resolver:  NewResolver(svc.Repositories, svc.Git, svc.Cache),
		param:     param,
	}
}
