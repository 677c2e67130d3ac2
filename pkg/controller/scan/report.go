package scan

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type colorFunc func(a ...any) string

// Reporter prints findings grouped by workflow file.
type Reporter struct {
	stdout  io.Writer
	verbose bool
	header  colorFunc
	red     colorFunc
	green   colorFunc
	yellow  colorFunc
	gray    colorFunc
}

func NewReporter(stdout io.Writer, verbose bool) *Reporter {
	return &Reporter{
		stdout:  stdout,
		verbose: verbose,
		header:  color.New(color.Bold).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
		green:   color.New(color.FgGreen).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
	}
}

// Report prints the results of a file.
// Nothing is printed if the file has nothing to report.
func (r *Reporter) Report(file string, results []*Result) {
	buf := &strings.Builder{}
	for _, result := range results {
		r.writeResult(buf, result)
	}
	if buf.Len() == 0 {
		return
	}
	fmt.Fprintf(r.stdout, "%s\n%s", r.header("==> "+file), buf.String())
}

func (r *Reporter) writeResult(buf *strings.Builder, result *Result) {
	switch result.Outcome {
	case OutcomeOutdated:
		buf.WriteString(r.Format(result.Finding) + "\n")
	case OutcomeSkipped:
		// Only actions under a subdirectory are worth mentioning: they are usually private.
		if r.verbose && result.Reason == "internal" {
			fmt.Fprintf(buf, "%s\n", r.gray(fmt.Sprintf("%s:%d %s is skipped (internal action)", result.Step.File, result.Step.Line, result.Step.Uses)))
		}
	case OutcomeNoData, OutcomeFailed:
		if r.verbose {
			fmt.Fprintf(buf, "%s\n", r.gray(fmt.Sprintf("%s:%d %s couldn't be checked: %v", result.Step.File, result.Step.Line, result.Step.Uses, result.Err)))
		}
	case OutcomeUpToDate:
	}
}

// Format returns a line describing a finding.
func (r *Reporter) Format(f *Finding) string {
	if f.IsSHA() {
		return fmt.Sprintf("%s:%d %s@%s is %s behind %s (%s)",
			f.File, f.Line, f.Ref.FullName(), shortSHA(f.Ref.Ref),
			r.yellow(pluralCommits(f.Ahead)), f.Latest, shortSHA(f.TargetSHA))
	}
	return fmt.Sprintf("%s:%d %s %s -> %s %s %s",
		f.File, f.Line, f.Ref.FullName(), f.CurrentVersion(), f.LatestVersion(),
		r.badge(f), f.ReleaseURL())
}

func (r *Reporter) badge(f *Finding) string {
	s := "[compat: " + f.Score.String() + "]"
	switch {
	case !f.Score.Known:
		return s
	case f.Score.Good():
		return r.green(s)
	default:
		return r.red(s)
	}
}

func pluralCommits(n int) string {
	if n == 1 {
		return "1 commit"
	}
	return fmt.Sprintf("%d commits", n)
}
