// Package cachecmd implements 'ghadrift cache'.
package cachecmd

import (
	"context"

	"github.com/ghadrift/ghadrift/pkg/cache"
	"github.com/ghadrift/ghadrift/pkg/cli/flag"
	"github.com/ghadrift/ghadrift/pkg/controller/cachecmd"
	"github.com/ghadrift/ghadrift/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

type runner struct {
	logE        *logrus.Entry
	globalFlags *flag.GlobalFlags
	getEnv      func(string) string
	all         bool
}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags, getEnv func(string) string) *cli.Command {
	r := &runner{
		logE:        logE,
		globalFlags: globalFlags,
		getEnv:      getEnv,
	}
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the cache of GitHub API and git lookups",
		Commands: []*cli.Command{
			{
				Name:  "clean",
				Usage: "Remove expired cache entries",
				Description: `Remove cache entries older than 24 hours.
The cache directory is $GHADRIFT_CACHE_DIR, or ghadrift under the user cache directory.

$ ghadrift cache clean

Remove every entry.

$ ghadrift cache clean --all
`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "all",
						Usage:       "Remove every entry",
						Destination: &r.all,
					},
				},
				Action: r.clean,
			},
		},
	}
}

func (r *runner) clean(_ context.Context, _ *cli.Command) error {
	log.SetLevel(r.globalFlags.LogLevel, r.logE)
	dir, err := cache.DefaultDir(r.getEnv)
	if err != nil {
		return err //nolint:wrapcheck
	}
	return cachecmd.New(cache.New(afero.NewOsFs(), dir)).Clean(r.logE, r.all) //nolint:wrapcheck
}
