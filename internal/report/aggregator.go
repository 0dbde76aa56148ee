// Package report aggregates test case results into a run verdict.
package report

import (
	"time"

	"github.com/montanaflynn/stats"

	"contracheck/internal/domain"
)

// Aggregator collects test case results in execution order. It is the explicit
// run context: nothing else holds results or the overall pass flag.
type Aggregator struct {
	results   []domain.TestCaseResult
	scheduled int
}

// NewAggregator creates an empty Aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// SetScheduled records how many cases the run planned. A run that collects
// fewer results than that is incomplete and cannot pass.
func (a *Aggregator) SetScheduled(n int) {
	a.scheduled = n
}

// Scheduled returns the planned case count, or the collected count when unset.
func (a *Aggregator) Scheduled() int {
	if a.scheduled == 0 {
		return len(a.results)
	}
	return a.scheduled
}

// Incomplete reports whether fewer cases ran than were scheduled.
func (a *Aggregator) Incomplete() bool {
	return len(a.results) < a.Scheduled()
}

// Add appends a result.
func (a *Aggregator) Add(result domain.TestCaseResult) {
	a.results = append(a.results, result)
}

// Results returns a copy of the collected results in execution order.
func (a *Aggregator) Results() []domain.TestCaseResult {
	out := make([]domain.TestCaseResult, len(a.results))
	copy(out, a.results)
	return out
}

// Len returns the number of collected results.
func (a *Aggregator) Len() int {
	return len(a.results)
}

// Passed returns the number of passing results.
func (a *Aggregator) Passed() int {
	n := 0
	for _, r := range a.results {
		if r.Passed {
			n++
		}
	}
	return n
}

// Failed returns the number of failing results.
func (a *Aggregator) Failed() int {
	return len(a.results) - a.Passed()
}

// Verdict is the logical AND of every result. An empty run is reported as
// ErrNoTestCases rather than a vacuous success, and an incomplete run fails.
func (a *Aggregator) Verdict() (bool, error) {
	if len(a.results) == 0 {
		return false, domain.ErrNoTestCases
	}
	if a.Incomplete() {
		return false, nil
	}
	for _, r := range a.results {
		if !r.Passed {
			return false, nil
		}
	}
	return true, nil
}

// ExitCode maps the verdict to the harness exit status.
func (a *Aggregator) ExitCode() int {
	if ok, err := a.Verdict(); ok && err == nil {
		return 0
	}
	return 1
}

// Summary holds counts and timing for a run.
type Summary struct {
	Total     int
	Scheduled int
	Passed    int
	Failed    int
	Verdict   bool
	Mean      time.Duration
	Median    time.Duration
	Max       time.Duration
}

// Interrupted reports whether the run stopped before every scheduled case ran.
func (s Summary) Interrupted() bool {
	return s.Total < s.Scheduled
}

// Summary computes counts and invocation timing statistics.
func (a *Aggregator) Summary() Summary {
	verdict, _ := a.Verdict()
	s := Summary{
		Total:     len(a.results),
		Scheduled: a.Scheduled(),
		Passed:    a.Passed(),
		Failed:    a.Failed(),
		Verdict:   verdict,
	}
	if len(a.results) == 0 {
		return s
	}

	durations := make(stats.Float64Data, 0, len(a.results))
	for _, r := range a.results {
		durations = append(durations, float64(r.Duration))
	}
	if mean, err := stats.Mean(durations); err == nil {
		s.Mean = time.Duration(mean)
	}
	if median, err := stats.Median(durations); err == nil {
		s.Median = time.Duration(median)
	}
	if longest, err := stats.Max(durations); err == nil {
		s.Max = time.Duration(longest)
	}
	return s
}
