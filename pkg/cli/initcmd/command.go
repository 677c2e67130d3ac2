// Package initcmd implements 'ghadrift init'.
package initcmd

import (
	"context"

	"github.com/ghadrift/ghadrift/pkg/cli/flag"
	"github.com/ghadrift/ghadrift/pkg/controller/initcmd"
	"github.com/ghadrift/ghadrift/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	r := &runner{
		logE:        logE,
		globalFlags: globalFlags,
	}
	return r.Command()
}

type runner struct {
	logE        *logrus.Entry
	globalFlags *flag.GlobalFlags
	args        []string
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create .ghadrift.yaml if it doesn't exist",
		Description: `Create .ghadrift.yaml if it doesn't exist

$ ghadrift init

You can also pass a configuration file path.

$ ghadrift init .github/ghadrift.yaml
`,
		Action: r.action,
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name:        "config",
				Max:         1,
				Destination: &r.args,
			},
		},
	}
}

func (r *runner) action(_ context.Context, _ *cli.Command) error {
	log.SetLevel(r.globalFlags.LogLevel, r.logE)
	configFilePath := r.globalFlags.Config
	if len(r.args) > 0 {
		configFilePath = r.args[0]
	}
	if configFilePath == "" {
		configFilePath = ".ghadrift.yaml"
	}
	created, err := initcmd.New(afero.NewOsFs()).Init(configFilePath)
	if err != nil {
		return err //nolint:wrapcheck
	}
	logE := r.logE.WithField("config", configFilePath)
	if !created {
		logE.Info("the configuration file already exists")
		return nil
	}
	logE.Info("created a configuration file")
	return nil
}
