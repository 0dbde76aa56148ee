package execution

import (
	"context"
	"time"

	"contracheck/internal/domain"
)

// Executor runs scheduled test cases and hands each result to a sink
type Executor interface {
	Execute(ctx context.Context, cases []domain.TestCase, sink Sink) (time.Duration, error)
}

// Sink receives test case results in execution order.
type Sink interface {
	Add(result domain.TestCaseResult)
}

// Observer receives presentation-only notifications about test cases.
type Observer interface {
	CaseStarted(tc domain.TestCase)
	CaseFinished(result domain.TestCaseResult)
}

// Progress tracks completed cases.
type Progress interface {
	Update(passed, failed int)
	Finish()
}
