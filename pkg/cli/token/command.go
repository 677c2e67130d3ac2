// Package token implements 'ghadrift token'.
// The token is stored in the OS keyring (macOS Keychain, Windows Credential Manager,
// or the Secret Service on Linux) and used when GHADRIFT_KEYRING_ENABLED is true.
package token

import (
	"context"
	"io"

	"github.com/ghadrift/ghadrift/pkg/controller/token"
	"github.com/ghadrift/ghadrift/pkg/github"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, stdin io.Reader) *cli.Command {
	r := &runner{
		logE:  logE,
		stdin: stdin,
	}
	return &cli.Command{
		Name:  "token",
		Usage: "Manage the GitHub access token in the OS keyring",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Store a GitHub access token read from stdin",
				Description: `Store a GitHub access token in the OS keyring.

$ echo "$GITHUB_TOKEN" | ghadrift token set

Then enable the keyring.

$ export GHADRIFT_KEYRING_ENABLED=true
`,
				Action: r.set,
			},
			{
				Name:   "rm",
				Usage:  "Remove the GitHub access token from the OS keyring",
				Action: r.remove,
			},
		},
	}
}

type runner struct {
	logE  *logrus.Entry
	stdin io.Reader
}

func (r *runner) set(_ context.Context, _ *cli.Command) error {
	if err := token.New(r.stdin, github.NewTokenManager()).Set(); err != nil {
		return err //nolint:wrapcheck
	}
	r.logE.Info("stored a GitHub access token in the keyring")
	return nil
}

func (r *runner) remove(_ context.Context, _ *cli.Command) error {
	if err := token.New(r.stdin, github.NewTokenManager()).Remove(); err != nil {
		return err //nolint:wrapcheck
	}
	r.logE.Info("removed a GitHub access token from the keyring")
	return nil
}
