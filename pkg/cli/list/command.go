// Package list implements 'ghadrift list'.
package list

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/ghadrift/ghadrift/pkg/cli/flag"
	"github.com/ghadrift/ghadrift/pkg/config"
	"github.com/ghadrift/ghadrift/pkg/controller/list"
	"github.com/ghadrift/ghadrift/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

type Flags struct {
	Owner        string
	LineTemplate string
	Include      []string
	Exclude      []string
	Args         []string
}

type runner struct {
	logE        *logrus.Entry
	globalFlags *flag.GlobalFlags
	stdout      io.Writer
}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags, stdout io.Writer) *cli.Command {
	r := &runner{
		logE:        logE,
		globalFlags: globalFlags,
		stdout:      stdout,
	}
	return r.Command()
}

func (r *runner) Command() *cli.Command {
	flags := &Flags{}
	return &cli.Command{
		Name:  "list",
		Usage: "List actions used in workflow files",
		Description: `List actions and reusable workflows used in workflow files.
Local actions and docker images are omitted.

$ ghadrift list

Output format (default CSV):
<FilePath>,<LineNumber>,<ActionName>,<Version>,<Kind>

Kind is one of sha, major, semver, branch, and internal.

Custom output format using Go template:
$ ghadrift list --line-template "{{.RepoOwner}}/{{.RepoName}}@{{.Version}}"

Available template fields:
  ActionName - owner/repo or owner/repo/path
  RepoOwner  - Repository owner
  RepoName   - Repository name
  Version    - Pinned version, branch, or commit SHA
  Kind       - The kind of the pin
  FilePath   - File path
  FileName   - Base file name
  LineNumber - Line number in the file
`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return r.action(ctx, flags)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "owner",
				Usage:       "Filter actions by owner",
				Destination: &flags.Owner,
			},
			&cli.StringFlag{
				Name:        "line-template",
				Usage:       "Go text/template format for each line",
				Destination: &flags.LineTemplate,
			},
			&cli.StringSliceFlag{
				Name:        "include",
				Aliases:     []string{"i"},
				Usage:       "A regular expression to include actions",
				Destination: &flags.Include,
			},
			&cli.StringSliceFlag{
				Name:        "exclude",
				Aliases:     []string{"e"},
				Usage:       "A regular expression to exclude actions",
				Destination: &flags.Exclude,
			},
		},
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name:        "files",
				Max:         -1,
				Destination: &flags.Args,
			},
		},
	}
}

func (r *runner) action(ctx context.Context, flags *Flags) error {
	log.SetLevel(r.globalFlags.LogLevel, r.logE)
	includes, err := compilePatterns(flags.Include)
	if err != nil {
		return fmt.Errorf("compile include patterns: %w", err)
	}
	excludes, err := compilePatterns(flags.Exclude)
	if err != nil {
		return fmt.Errorf("compile exclude patterns: %w", err)
	}
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get the current directory: %w", err)
	}

	fs := afero.NewOsFs()
	cfgFilePath, err := config.NewFinder(fs).Find(r.globalFlags.Config)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := config.NewReader(fs).Read(cfg, cfgFilePath); err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}

	ctrl := list.New(fs, cfg, &list.Param{
		WorkflowFilePaths: flags.Args,
		ConfigFilePath:    cfgFilePath,
		PWD:               pwd,
		Owner:             flags.Owner,
		LineTemplate:      flags.LineTemplate,
		Includes:          includes,
		Excludes:          excludes,
	}, r.stdout)
	return ctrl.List(ctx, r.logE) //nolint:wrapcheck
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	result := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile regex %q: %w", pattern, err)
		}
		result = append(result, re)
	}
	return result, nil
}
