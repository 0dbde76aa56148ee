package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"contracheck/internal/domain"
	"contracheck/internal/report"
)

var (
	heading = color.New(color.FgCyan)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	warning = color.New(color.FgYellow)
	muted   = color.New(color.FgHiBlack)
)

const separatorWidth = 40

// Formatter prints human-readable progress and summaries. It implements
// execution.Observer.
type Formatter struct {
	out  io.Writer
	mode domain.ExecutionMode
}

// NewFormatter creates a new Formatter
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintBanner prints the run header
func (f *Formatter) PrintBanner(detector string) {
	heading.Fprintln(f.out, "=== Contradiction detector meta-test ===")
	fmt.Fprintf(f.out, "Detector: %s\n", detector)
}

// PrintSkipped reports modes that will not run, so they are never silently omitted
func (f *Formatter) PrintSkipped(skipped []domain.SkippedMode) {
	for _, s := range skipped {
		warning.Fprintf(f.out, "Skipping %s mode tests: %s\n", s.Mode, s.Reason)
	}
}

// CaseStarted prints what is about to be tested
func (f *Formatter) CaseStarted(tc domain.TestCase) {
	if tc.Mode != f.mode {
		f.mode = tc.Mode
		heading.Fprintf(f.out, "=== %s mode ===\n", tc.Mode)
	}
	fmt.Fprintf(f.out, "Testing %s\n", tc.Description())
	fmt.Fprintf(f.out, "  Expected: %s (exit %d)\n", expectation(tc.Pair.ExpectedContradiction), tc.Pair.ExpectedExitCode())
}

// CaseFinished prints the outcome and the detector's own output
func (f *Formatter) CaseFinished(r domain.TestCaseResult) {
	if r.Passed {
		success.Fprintf(f.out, "✓ passed (exit %d)\n", r.ActualExitCode)
	} else {
		failure.Fprintf(f.out, "✗ failed [%s]\n", r.Failure)
		fmt.Fprintf(f.out, "  %s\n", r.Message)
	}

	f.printStream("Output", r.Stdout)
	f.printStream("Errors", r.Stderr)
	muted.Fprintln(f.out, strings.Repeat("-", separatorWidth))
}

func (f *Formatter) printStream(label, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	fmt.Fprintf(f.out, "  %s:\n", label)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(f.out, "    %s\n", line)
	}
}

// PrintSummary prints the itemized results in execution order and the verdict
func (f *Formatter) PrintSummary(summary report.Summary, results []domain.TestCaseResult) {
	fmt.Fprintln(f.out)
	heading.Fprintln(f.out, "=== Summary ===")

	if len(results) == 0 {
		failure.Fprintln(f.out, "No test cases ran")
	}
	for i, r := range results {
		fmt.Fprintf(f.out, "%d. %s: ", i+1, r.Description)
		if r.Passed {
			success.Fprintln(f.out, "PASS")
		} else {
			failure.Fprintf(f.out, "FAIL [%s]\n", r.Failure)
		}
	}

	fmt.Fprintln(f.out)
	fmt.Fprintf(f.out, "Cases:   %d total, %d passed, %d failed\n", summary.Total, summary.Passed, summary.Failed)
	if summary.Total > 0 {
		fmt.Fprintf(f.out, "Timing:  mean %s, median %s, max %s\n",
			round(summary.Mean), round(summary.Median), round(summary.Max))
	}
	if summary.Interrupted() {
		warning.Fprintf(f.out, "Run interrupted: only %d of %d scheduled cases ran\n", summary.Total, summary.Scheduled)
	}

	fmt.Fprintln(f.out)
	fmt.Fprint(f.out, "Overall: ")
	if summary.Verdict {
		success.Fprintln(f.out, "PASS ✓")
	} else {
		failure.Fprintln(f.out, "FAIL ✗")
	}
}

// PrintPlan lists fixture pairs and the modes they will run in
func (f *Formatter) PrintPlan(pairs []domain.FixturePair, cases []domain.TestCase, skipped []domain.SkippedMode) {
	success.Fprintf(f.out, "Found %d fixture pair(s):\n", len(pairs))
	for _, p := range pairs {
		fmt.Fprintf(f.out, "  %s (%s)\n", p.Name, p.Classification())
		muted.Fprintf(f.out, "    implementation: %s\n", p.ImplementationPath)
		muted.Fprintf(f.out, "    documentation:  %s\n", p.DocumentationPath)
	}

	fmt.Fprintln(f.out)
	success.Fprintf(f.out, "%d test case(s) would run:\n", len(cases))
	for i, tc := range cases {
		fmt.Fprintf(f.out, "  %d. %s\n", i+1, tc.Description())
	}
	f.PrintSkipped(skipped)
}

// PrintFailures prints every failed case of a stored report
func (f *Formatter) PrintFailures(rep *domain.RunReport) {
	if rep.Meta.Interrupted {
		warning.Fprintf(f.out, "Run %s was interrupted: %d of %d scheduled cases ran\n",
			rep.Meta.RunID, rep.Meta.TotalCases, rep.Meta.ScheduledCases)
	}

	failed := rep.Failures()
	if len(failed) == 0 {
		success.Fprintln(f.out, "✓ No failed test cases in the last run")
		return
	}

	failure.Fprintf(f.out, "%d of %d test case(s) failed in run %s (%s)\n",
		len(failed), rep.Meta.TotalCases, rep.Meta.RunID, rep.Meta.Timestamp)
	for _, r := range failed {
		fmt.Fprintln(f.out)
		failure.Fprintf(f.out, "✗ %s [%s]\n", r.Description, r.Failure)
		fmt.Fprintf(f.out, "  %s\n", r.Message)
		f.printStream("Output", r.Stdout)
		f.printStream("Errors", r.Stderr)
	}
}

func expectation(contradiction bool) string {
	if contradiction {
		return "contradiction"
	}
	return "no contradiction"
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
