package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/ghadrift/ghadrift/pkg/di"
	"github.com/urfave/cli/v3"
)

func scanFlags(flags *di.Flags) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "update",
			Aliases:     []string{"u"},
			Usage:       "Commit updates of outdated actions on new branches",
			Local:       true,
			Destination: &flags.Update,
		},
		&cli.BoolFlag{
			Name:        "push",
			Aliases:     []string{"p"},
			Usage:       "Push update branches and open pull requests. This requires -u",
			Local:       true,
			Destination: &flags.Push,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "Report skipped internal actions and failed checks, and output debug logs",
			Local:       true,
			Destination: &flags.Verbose,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format. text or sarif",
			Value:       "text",
			Local:       true,
			Destination: &flags.Format,
		},
		&cli.StringFlag{
			Name:        "repo-owner",
			Usage:       "The owner of the repository pull requests are opened against. By default, GITHUB_REPOSITORY or the origin remote is used",
			Local:       true,
			Destination: &flags.RepoOwner,
		},
		&cli.StringFlag{
			Name:        "repo-name",
			Usage:       "The name of the repository pull requests are opened against",
			Local:       true,
			Destination: &flags.RepoName,
		},
		&cli.StringFlag{
			Name:        "base",
			Usage:       "The base branch of pull requests. The default is main",
			Local:       true,
			Destination: &flags.Base,
		},
	}
}

func (r *Runner) scanAction(ctx context.Context, flags *di.Flags) error {
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get the current directory: %w", err)
	}
	flags.PWD = pwd
	flags.Version = r.LDFlags.Version
	flags.Stdout = r.Stdout
	flags.Stderr = r.Stderr
	di.SetEnv(flags, r.GetEnv)
	secrets := &di.Secrets{}
	secrets.SetFromEnv(r.GetEnv)
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return di.Run(ctx, r.LogE, flags, secrets, r.GetEnv, lookPath) //nolint:wrapcheck
}
