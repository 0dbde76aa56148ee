package execution

import (
	"context"
	"fmt"
	"time"

	"contracheck/internal/domain"
)

// SequentialExecutor runs test cases one at a time so that no two detector
// processes overlap and output never interleaves.
type SequentialExecutor struct {
	runner   *CaseRunner
	progress Progress
}

// NewSequentialExecutor creates a new SequentialExecutor
func NewSequentialExecutor(runner *CaseRunner) *SequentialExecutor {
	return &SequentialExecutor{runner: runner}
}

// SetProgress sets the progress tracker for the executor
func (e *SequentialExecutor) SetProgress(progress Progress) {
	e.progress = progress
}

// Execute runs all cases in order. Per-case failures are results, not errors;
// an error is returned only when ctx ends before every case ran.
func (e *SequentialExecutor) Execute(ctx context.Context, cases []domain.TestCase, sink Sink) (time.Duration, error) {
	startTime := time.Now()
	var passed, failed int

	defer func() {
		if e.progress != nil {
			e.progress.Finish()
		}
	}()

	for i, tc := range cases {
		if err := ctx.Err(); err != nil {
			return time.Since(startTime), fmt.Errorf("run interrupted after %d of %d cases: %w", i, len(cases), err)
		}

		result := e.runner.Run(ctx, tc)
		sink.Add(result)

		if result.Passed {
			passed++
		} else {
			failed++
		}
		if e.progress != nil {
			e.progress.Update(passed, failed)
		}
	}

	return time.Since(startTime), nil
}
