package scan

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ghadrift/ghadrift/pkg/action"
	"github.com/ghadrift/ghadrift/pkg/config"
	"github.com/ghadrift/ghadrift/pkg/workflow"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// Run scans workflow files and reports outdated actions.
// With Update, outdated version pins are updated on new branches.
// A failure to check a single action never stops the scan.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if err := c.readConfig(); err != nil {
		return err
	}
	files, err := c.searchFiles()
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}
	logE.WithField("num_of_files", len(files)).Debug("found workflow files")

	reporter := NewReporter(c.param.Stdout, c.param.Verbose)
	findings := []*Finding{}
	for _, file := range files {
		logE := logE.WithField("workflow_file", file)
		results := c.scanFile(ctx, logE, file)
		for _, result := range results {
			if result.Outcome == OutcomeOutdated {
				findings = append(findings, result.Finding)
			}
		}
		if c.param.Format != FormatSARIF {
			reporter.Report(file, results)
		}
	}

	if c.param.Format == FormatSARIF {
		if err := c.outputSARIF(findings); err != nil {
			return err
		}
	}

	if !c.param.Update {
		return nil
	}
	return c.update(ctx, logE, findings)
}

func (c *Controller) readConfig() error {
	p, err := c.cfgFinder.Find(c.param.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	c.param.ConfigFilePath = p
	cfg := &config.Config{}
	if err := c.cfgReader.Read(cfg, p); err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}
	c.cfg = cfg
	return nil
}

func (c *Controller) searchFiles() ([]string, error) {
	if len(c.param.WorkflowFilePaths) != 0 {
		return c.param.WorkflowFilePaths, nil
	}
	if len(c.cfg.Files) != 0 {
		return workflow.Glob(c.fs, c.param.PWD, c.cfg.Patterns(c.param.ConfigFilePath)) //nolint:wrapcheck
	}
	return workflow.Discover(c.fs, c.param.PWD) //nolint:wrapcheck
}

func (c *Controller) abs(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.param.PWD, file)
}

// scanFile checks every step of a workflow file.
// A file that can't be read or parsed is skipped.
func (c *Controller) scanFile(ctx context.Context, logE *logrus.Entry, file string) []*Result {
	steps, err := workflow.ReadSteps(c.fs, c.param.PWD, file)
	if err != nil {
		logerr.WithError(logE, err).Debug("skip a workflow file that can't be read or parsed")
		return nil
	}
	if len(steps) == 0 {
		logE.Debug("no action is used")
		return nil
	}
	results := make([]*Result, 0, len(steps))
	for _, step := range steps {
		logE := logE.WithFields(logrus.Fields{
			"line":   step.Line,
			"action": step.Uses,
		})
		result := c.check(ctx, logE, step)
		switch result.Outcome {
		case OutcomeNoData:
			logerr.WithError(logE, result.Err).Debug("abandon the check as no version is available")
		case OutcomeFailed:
			logerr.WithError(logE, result.Err).Debug("abandon the check")
		case OutcomeSkipped:
			logE.WithField("reason", result.Reason).Debug("skip an action")
		case OutcomeUpToDate, OutcomeOutdated:
		}
		results = append(results, result)
	}
	return results
}

func (r *Result) fail(err error) *Result {
	r.Err = err
	if errors.Is(err, ErrNoData) || errors.Is(err, action.ErrNoVersion) {
		r.Outcome = OutcomeNoData
		return r
	}
	r.Outcome = OutcomeFailed
	return r
}

func (r *Result) skip(reason string) *Result {
	r.Outcome = OutcomeSkipped
	r.Reason = reason
	return r
}

func (c *Controller) check(ctx context.Context, logE *logrus.Entry, step *workflow.Step) *Result {
	ref := action.Parse(step.Uses)
	result := &Result{Step: step, Ref: ref}
	if ref.Kind.Skipped() {
		return result.skip(ref.Kind.String())
	}
	ignored, err := c.cfg.Ignored(ref.FullName(), ref.Ref)
	if err != nil {
		return result.fail(fmt.Errorf("check if the action is ignored: %w", err))
	}
	if ignored {
		return result.skip("ignored")
	}

	latest, err := c.resolver.LatestVersion(ctx, logE, ref.Owner, ref.Repo)
	if err != nil {
		return result.fail(fmt.Errorf("get the latest version: %w", err))
	}
	logE = logE.WithField("latest_version", latest)

	finding := &Finding{
		File:   step.File,
		Line:   step.Line,
		Ref:    ref,
		Latest: latest,
	}
	if ref.Kind == action.KindSHA {
		return c.checkSHA(ctx, logE, result, finding)
	}

	var outdated bool
	if ref.Kind == action.KindMajor {
		outdated, err = action.MajorOutdated(ref.Ref, latest)
	} else {
		outdated, err = action.SemverOutdated(ref.Ref, latest)
	}
	if err != nil {
		return result.fail(fmt.Errorf("compare versions: %w", err))
	}
	if !outdated {
		return result
	}
	finding.Score = c.scorer.Score(ctx, logE, ref.FullName(), finding.CurrentVersion(), finding.LatestVersion())
	result.Outcome = OutcomeOutdated
	result.Finding = finding
	return result
}

// checkSHA compares a pinned commit with the commit of the latest version.
// If the commits can't be compared, e.g. because the clone fails, the action is
// treated as up to date.
func (c *Controller) checkSHA(ctx context.Context, logE *logrus.Entry, result *Result, finding *Finding) *Result {
	ref := finding.Ref
	target, err := c.resolver.CommitSHA(ctx, logE, ref.Owner, ref.Repo, finding.Latest)
	if err != nil {
		return result.fail(fmt.Errorf("get the commit of the latest version: %w", err))
	}
	ahead, err := c.resolver.AheadCount(ctx, logE, ref.Owner, ref.Repo, ref.Ref, target)
	if err != nil {
		logerr.WithError(logE, err).Debug("compare commits, treating the action as up to date")
		return result
	}
	if !action.SHAOutdated(ahead) {
		return result
	}
	finding.TargetSHA = target
	finding.Ahead = ahead
	result.Outcome = OutcomeOutdated
	result.Finding = finding
	return result
}
