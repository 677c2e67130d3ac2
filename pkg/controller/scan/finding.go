package scan

import (
	"github.com/ghadrift/ghadrift/pkg/action"
	"github.com/ghadrift/ghadrift/pkg/badge"
	"github.com/ghadrift/ghadrift/pkg/workflow"
)

// Outcome is the result of checking a single step.
type Outcome int

const (
	// OutcomeUpToDate means the pinned version is the latest one.
	OutcomeUpToDate Outcome = iota
	// OutcomeOutdated means a newer version exists. Result.Finding is set.
	OutcomeOutdated
	// OutcomeSkipped means the reference is never checked: local, docker, internal, a branch, or ignored by configuration.
	OutcomeSkipped
	// OutcomeNoData means GitHub has no release, branch, or commit to compare against.
	OutcomeNoData
	// OutcomeFailed means a lookup failed, e.g. a network error or rate limiting.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomeOutdated:
		return "outdated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNoData:
		return "no-data"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Result struct {
	Step    *workflow.Step
	Ref     *action.Reference
	Outcome Outcome
	Finding *Finding
	// Reason explains OutcomeSkipped.
	Reason string
	Err    error
}

// Finding is an outdated action.
type Finding struct {
	File string
	Line int
	Ref  *action.Reference
	// Latest is the tag of the latest release.
	Latest string
	// Score is the compatibility score of the update. It is Unknown for SHA pins.
	Score badge.Score
	// TargetSHA and Ahead are set for SHA pins.
	TargetSHA string
	Ahead     int
}

func (f *Finding) IsSHA() bool {
	return f.Ref.Kind == action.KindSHA
}

// CurrentVersion returns the numeric part of the pinned version.
func (f *Finding) CurrentVersion() string {
	return action.NumericPrefix(f.Ref.Ref)
}

// LatestVersion returns the numeric part of the latest version.
func (f *Finding) LatestVersion() string {
	return action.NumericPrefix(f.Latest)
}

// ReleaseURL returns the URL of the release notes of the latest version.
func (f *Finding) ReleaseURL() string {
	return "https://github.com/" + f.Ref.FullName() + "/releases/tag/" + f.Latest
}

func shortSHA(sha string) string {
	if len(sha) > 7 { //nolint:mnd
		return sha[:7]
	}
	return sha
}
