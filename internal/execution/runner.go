package execution

import (
	"context"
	"fmt"
	"time"

	"contracheck/internal/domain"
)

// CaseRunner drives one detector invocation and judges it against the fixture
type CaseRunner struct {
	detector Detector
	observer Observer
}

// NewCaseRunner creates a new CaseRunner. observer may be nil.
func NewCaseRunner(detector Detector, observer Observer) *CaseRunner {
	return &CaseRunner{detector: detector, observer: observer}
}

// Run executes a single test case
func (r *CaseRunner) Run(ctx context.Context, tc domain.TestCase) domain.TestCaseResult {
	if r.observer != nil {
		r.observer.CaseStarted(tc)
	}

	inv := r.detector.Invoke(ctx, tc.Pair, tc.Mode)
	result := Judge(tc, inv)

	if r.observer != nil {
		r.observer.CaseFinished(result)
	}
	return result
}

// Judge applies the exit-code contract to an invocation.
func Judge(tc domain.TestCase, inv domain.InvocationResult) domain.TestCaseResult {
	expected := tc.Pair.ExpectedExitCode()
	result := domain.TestCaseResult{
		Description:           tc.Description(),
		Pair:                  tc.Pair,
		Mode:                  tc.Mode,
		ExpectedContradiction: tc.Pair.ExpectedContradiction,
		ExpectedExitCode:      expected,
		ActualExitCode:        inv.ExitCode,
		Stdout:                inv.Stdout,
		Stderr:                inv.Stderr,
		Duration:              inv.Duration,
	}

	switch {
	case inv.SpawnError != nil:
		result.Failure = domain.FailureSpawn
		result.Message = fmt.Sprintf("detector could not be started: %v", inv.SpawnError)
	case inv.TimedOut:
		result.Failure = domain.FailureTimeout
		result.Message = fmt.Sprintf("detector did not finish within the deadline (ran %s)", inv.Duration.Round(time.Millisecond))
	case inv.ExitCode != domain.ExitConsistent && inv.ExitCode != domain.ExitContradiction:
		result.Failure = domain.FailureUnexpectedExitCode
		result.Message = fmt.Sprintf("detector returned unexpected exit code %d (%s); expected %d",
			inv.ExitCode, inv.Status, expected)
	case inv.ExitCode != expected:
		result.Failure = domain.FailureExitCodeMismatch
		result.Message = fmt.Sprintf("expected exit code %d (%s), got %d (%s)",
			expected, verdictLabel(expected), inv.ExitCode, verdictLabel(inv.ExitCode))
	default:
		result.Passed = true
	}

	return result
}

func verdictLabel(code int) string {
	if code == domain.ExitContradiction {
		return "contradiction"
	}
	return "no contradiction"
}
