package scan

import (
	"fmt"

	"github.com/ghadrift/ghadrift/pkg/sarif"
)

const (
	ruleOutdatedVersion = "outdated-version"
	ruleOutdatedSHA     = "outdated-sha"
)

func (c *Controller) outputSARIF(findings []*Finding) error {
	log := sarif.NewLog(sarif.Driver{
		Name:           "ghadrift",
		InformationURI: "https://github.com/ghadrift/ghadrift",
		Version:        c.param.Version,
		Rules: []sarif.Rule{
			{
				ID:               ruleOutdatedVersion,
				ShortDescription: sarif.Message{Text: "GitHub Action is pinned to an outdated version"},
			},
			{
				ID:               ruleOutdatedSHA,
				ShortDescription: sarif.Message{Text: "GitHub Action is pinned to a commit behind the latest release"},
			},
		},
	}, buildSARIFResults(findings))
	if err := log.Encode(c.param.Stdout); err != nil {
		return fmt.Errorf("output SARIF: %w", err)
	}
	return nil
}

func buildSARIFResults(findings []*Finding) []sarif.Result {
	results := make([]sarif.Result, 0, len(findings))
	for _, f := range findings {
		if f.IsSHA() {
			results = append(results, sarif.NewResult(ruleOutdatedSHA, sarif.LevelWarning,
				fmt.Sprintf("%s@%s is %s behind %s (%s)", f.Ref.FullName(), shortSHA(f.Ref.Ref), pluralCommits(f.Ahead), f.Latest, shortSHA(f.TargetSHA)),
				f.File, f.Line))
			continue
		}
		results = append(results, sarif.NewResult(ruleOutdatedVersion, sarif.LevelWarning,
			fmt.Sprintf("%s %s -> %s (compatibility: %s) %s", f.Ref.FullName(), f.CurrentVersion(), f.LatestVersion(), f.Score, f.ReleaseURL()),
			f.File, f.Line))
	}
	return results
}
