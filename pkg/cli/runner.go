// Package cli defines the command line interface of ghadrift.
// The root command scans workflow files. Subcommands manage the configuration,
// the cache, and the GitHub access token.
package cli

import (
	"context"
	"io"

	"github.com/ghadrift/ghadrift/pkg/cli/cachecmd"
	"github.com/ghadrift/ghadrift/pkg/cli/flag"
	"github.com/ghadrift/ghadrift/pkg/cli/initcmd"
	"github.com/ghadrift/ghadrift/pkg/cli/list"
	"github.com/ghadrift/ghadrift/pkg/cli/token"
	"github.com/ghadrift/ghadrift/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

type LDFlags struct {
	Version string
	Commit  string
	Date    string
}

// Runner runs ghadrift. LookPath finds git and defaults to exec.LookPath.
type Runner struct {
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	LDFlags  *LDFlags
	LogE     *logrus.Entry
	GetEnv   func(string) string
	LookPath func(string) (string, error)
}

// Run runs the command. The version is shown only by the version subcommand
// because -v is taken by --verbose.
func (r *Runner) Run(ctx context.Context, args ...string) error {
	gFlags := &flag.GlobalFlags{}
	flags := &di.Flags{GlobalFlags: gFlags}
	cmd := &cli.Command{
		Name:  "ghadrift",
		Usage: "Find outdated GitHub Actions and update them. https://github.com/ghadrift/ghadrift",
		Description: `ghadrift searches workflow files under .github/workflows and reports actions
pinned to versions or commits older than their latest release.

$ ghadrift

You can also pass workflow file paths as arguments.

$ ghadrift .github/workflows/test.yaml

-u commits each update on a new branch, and -u -p pushes the branch and opens a pull request.

$ ghadrift -u -p
`,
		Flags:                  append(gFlags.Flags(), scanFlags(flags)...),
		EnableShellCompletion:  true,
		UseShortOptionHandling: true,
		Writer:                 r.Stdout,
		ErrWriter:              r.Stderr,
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name:        "files",
				Max:         -1,
				Destination: &flags.Args,
			},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return r.scanAction(ctx, flags)
		},
		Commands: []*cli.Command{
			initcmd.New(r.LogE, gFlags),
			list.New(r.LogE, gFlags, r.Stdout),
			cachecmd.New(r.LogE, gFlags, r.GetEnv),
			token.New(r.LogE, r.Stdin),
			r.newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}
