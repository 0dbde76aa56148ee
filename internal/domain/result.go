package domain

import "time"

// InvocationResult is the raw outcome of running the detector once.
type InvocationResult struct {
	ExitCode   int           // -1 when the process never produced a status
	Status     string        // Process state as reported by the OS, e.g. "exit status 2"
	Stdout     string        // Captured standard output
	Stderr     string        // Captured standard error
	SpawnError error         // Set when the detector could not be started or waited on
	TimedOut   bool          // Set when the invocation deadline expired
	Duration   time.Duration // Wall time of the invocation
}

// TestCaseResult is the judged outcome of one (pair, mode) test case.
type TestCaseResult struct {
	Description           string        `json:"description"`
	Pair                  FixturePair   `json:"pair"`
	Mode                  ExecutionMode `json:"mode"`
	ExpectedContradiction bool          `json:"expected_contradiction"`
	ExpectedExitCode      int           `json:"expected_exit_code"`
	ActualExitCode        int           `json:"actual_exit_code"`
	Passed                bool          `json:"passed"`
	Failure               FailureKind   `json:"failure,omitempty"`
	Message               string        `json:"message,omitempty"`
	Stdout                string        `json:"stdout,omitempty"`
	Stderr                string        `json:"stderr,omitempty"`
	Duration              time.Duration `json:"duration_ns"`
}

// SkippedMode records a mode that was not scheduled and why.
type SkippedMode struct {
	Mode   ExecutionMode `json:"mode"`
	Reason string        `json:"reason"`
}

// RunMeta contains metadata about a harness run
type RunMeta struct {
	RunID           string        `json:"run_id"`
	Detector        string        `json:"detector"`
	TotalCases      int           `json:"total_cases"`
	ScheduledCases  int           `json:"scheduled_cases"`
	Interrupted     bool          `json:"interrupted,omitempty"`
	PassedCases     int           `json:"passed_cases"`
	FailedCases     int           `json:"failed_cases"`
	Modes           []string      `json:"modes"`
	Skipped         []SkippedMode `json:"skipped,omitempty"`
	Verdict         bool          `json:"verdict"`
	Duration        string        `json:"duration"`
	DurationSeconds float64       `json:"duration_seconds"`
	Timestamp       string        `json:"timestamp"`
}

// RunReport is the complete persisted output of a run.
type RunReport struct {
	Meta  RunMeta          `json:"meta"`
	Cases []TestCaseResult `json:"cases"`
}

// Failures returns the failed cases in execution order.
func (r *RunReport) Failures() []TestCaseResult {
	var failed []TestCaseResult
	for _, c := range r.Cases {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// ForMode returns a copy of the report holding only the cases run in mode.
func (r *RunReport) ForMode(mode ExecutionMode) *RunReport {
	out := &RunReport{Meta: r.Meta}
	for _, c := range r.Cases {
		if c.Mode == mode {
			out.Cases = append(out.Cases, c)
		}
	}
	return out
}
