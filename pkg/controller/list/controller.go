// Package list prints the actions used in workflow files.
package list

import (
	"io"
	"regexp"

	"github.com/ghadrift/ghadrift/pkg/config"
	"github.com/spf13/afero"
)

type Controller struct {
	fs     afero.Fs
	cfg    *config.Config
	param  *Param
	stdout io.Writer
}

type Param struct {
	WorkflowFilePaths []string
	ConfigFilePath    string
	PWD               string
	Owner             string
	LineTemplate      string
	Includes          []*regexp.Regexp
	Excludes          []*regexp.Regexp
}

func New(fs afero.Fs, cfg *config.Config, param *Param, stdout io.Writer) *Controller {
	return &Controller{
		fs:     fs,
		cfg:    cfg,
		param:  param,
		stdout: stdout,
	}
}

// ActionInfo is passed to the line template.
type ActionInfo struct {
	ActionName string // owner/repo or owner/repo/path
	RepoOwner  string
	RepoName   string
	Version    string
	Kind       string // sha, major, semver, branch, internal
	FilePath   string
	FileName   string
	LineNumber int
}
