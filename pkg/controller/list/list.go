package list

import (
	"context"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/ghadrift/ghadrift/pkg/action"
	"github.com/ghadrift/ghadrift/pkg/workflow"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// List prints the actions of every workflow file.
// Local actions and docker images are omitted.
func (c *Controller) List(_ context.Context, logE *logrus.Entry) error {
	files, err := c.searchFiles()
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}
	tmpl, err := c.parseTemplate()
	if err != nil {
		return err
	}
	for _, file := range files {
		logE := logE.WithField("workflow_file", file)
		if err := c.listWorkflow(logE, file, tmpl); err != nil {
			logerr.WithError(logE, err).Error("list actions in a workflow file")
		}
	}
	return nil
}

func (c *Controller) parseTemplate() (*template.Template, error) {
	if c.param.LineTemplate == "" {
		return nil, nil //nolint:nilnil
	}
	tmpl, err := template.New("line").Parse(c.param.LineTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse line template: %w", err)
	}
	return tmpl, nil
}

func (c *Controller) searchFiles() ([]string, error) {
	if len(c.param.WorkflowFilePaths) != 0 {
		return c.param.WorkflowFilePaths, nil
	}
	if c.cfg != nil && len(c.cfg.Files) > 0 {
		return workflow.Glob(c.fs, c.param.PWD, c.cfg.Patterns(c.param.ConfigFilePath)) //nolint:wrapcheck
	}
	return workflow.Discover(c.fs, c.param.PWD) //nolint:wrapcheck
}

func (c *Controller) listWorkflow(logE *logrus.Entry, file string, tmpl *template.Template) error {
	steps, err := workflow.ReadSteps(c.fs, c.param.PWD, file)
	if err != nil {
		return err //nolint:wrapcheck
	}
	for _, step := range steps {
		ref := action.Parse(step.Uses)
		if ref.Kind == action.KindLocal || ref.Kind == action.KindDocker {
			continue
		}
		if c.excluded(ref) {
			logE.WithField("action", ref.Path).Debug("exclude the action")
			continue
		}
		info := &ActionInfo{
			ActionName: ref.Path,
			RepoOwner:  ref.Owner,
			RepoName:   ref.Repo,
			Version:    ref.Ref,
			Kind:       ref.Kind.String(),
			FilePath:   file,
			FileName:   filepath.Base(file),
			LineNumber: step.Line,
		}
		if err := c.output(info, tmpl); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) excluded(ref *action.Reference) bool {
	if c.param.Owner != "" && ref.Owner != c.param.Owner {
		return true
	}
	for _, r := range c.param.Excludes {
		if r.MatchString(ref.Path) {
			return true
		}
	}
	if len(c.param.Includes) == 0 {
		return false
	}
	for _, r := range c.param.Includes {
		if r.MatchString(ref.Path) {
			return false
		}
	}
	return true
}

func (c *Controller) output(info *ActionInfo, tmpl *template.Template) error {
	if tmpl != nil {
		if err := tmpl.Execute(c.stdout, info); err != nil {
			return fmt.Errorf("execute template: %w", err)
		}
		fmt.Fprintln(c.stdout)
		return nil
	}
	// <FilePath>,<LineNumber>,<ActionName>,<Version>,<Kind>
	fmt.Fprintf(c.stdout, "%s,%d,%s,%s,%s\n", info.FilePath, info.LineNumber, info.ActionName, info.Version, info.Kind)
	return nil
}
