// Package di wires the dependencies of the scan.
// It validates flags, builds the GitHub client, the git client, the cache, and the
// compatibility scorer, and hands them to the scan controller.
package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/ghadrift/ghadrift/pkg/badge"
	"github.com/ghadrift/ghadrift/pkg/cache"
	"github.com/ghadrift/ghadrift/pkg/config"
	"github.com/ghadrift/ghadrift/pkg/controller/scan"
	"github.com/ghadrift/ghadrift/pkg/git"
	"github.com/ghadrift/ghadrift/pkg/github"
	"github.com/ghadrift/ghadrift/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var (
	ErrPushRequiresUpdate = errors.New("-p (--push) requires -u (--update)")
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrGitNotFound        = git.ErrNotFound
)

const badgeTimeout = 30 * time.Second

// Validate checks flag combinations. It runs before anything touches the filesystem or network.
func Validate(flags *Flags) error {
	if flags.Push && !flags.Update {
		return ErrPushRequiresUpdate
	}
	switch flags.Format {
	case "", scan.FormatText, scan.FormatSARIF:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, flags.Format)
	}
}

// Run scans workflow files.
// lookPath finds executables. A missing git is an error returned before anything is scanned.
func Run(ctx context.Context, logE *logrus.Entry, flags *Flags, secrets *Secrets, getEnv func(string) string, lookPath func(string) (string, error)) error {
	if err := Validate(flags); err != nil {
		return err
	}
	if flags.IsGitHubActions {
		color.NoColor = false
	}
	log.SetLevel(flags.LogLevel, logE)
	if flags.Verbose {
		log.EnableDebug(logE)
	}
	if err := git.LookPath(lookPath); err != nil {
		return err //nolint:wrapcheck
	}

	fs := afero.NewOsFs()
	cacheDir, err := cache.DefaultDir(getEnv)
	if err != nil {
		return err //nolint:wrapcheck
	}
	c := cache.New(fs, cacheDir)
	logE.WithField("cache_dir", cacheDir).Debug("use the cache directory")

	gh := github.New(ctx, logE, secrets.GitHubToken, flags.KeyringEnabled)
	ctrl := scan.New(&scan.Services{
		Repositories: gh.Repositories,
		PullRequests: gh.PullRequests,
		Git:          git.New(),
		Scorer:       badge.New(&http.Client{Timeout: badgeTimeout}, c),
		Cache:        c,
	}, fs, config.NewFinder(fs), config.NewReader(fs), buildParam(flags))
	return ctrl.Run(ctx, logE) //nolint:wrapcheck
}

func buildParam(flags *Flags) *scan.Param {
	owner, name := flags.Repo()
	format := flags.Format
	stdout, stderr := flags.Stdout, flags.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if format == "" {
		format = scan.FormatText
	}
	return &scan.Param{
		WorkflowFilePaths: flags.Args,
		ConfigFilePath:    flags.Config,
		PWD:               flags.PWD,
		Update:            flags.Update,
		Push:              flags.Push,
		Verbose:           flags.Verbose,
		Format:            format,
		RepoOwner:         owner,
		RepoName:          name,
		Base:              flags.Base,
		Version:           flags.Version,
		Stdout:            stdout,
		Stderr:            stderr,
	}
}
