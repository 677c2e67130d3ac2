package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func (r *Runner) newVersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version",
		Action: r.versionAction,
	}
}

func (r *Runner) versionAction(_ context.Context, _ *cli.Command) error {
	fmt.Fprintf(r.Stdout, "ghadrift version %s (%s)\n", r.LDFlags.Version, r.LDFlags.Commit)
	return nil
}
