package report

import (
	"time"

	"contracheck/internal/domain"
)

// RunInfo describes the run that produced the aggregated results.
type RunInfo struct {
	RunID    string
	Detector string
	Modes    []domain.ExecutionMode
	Skipped  []domain.SkippedMode
	Duration time.Duration
	Finished time.Time
}

// Build assembles the persisted report for a run.
func (a *Aggregator) Build(info RunInfo) *domain.RunReport {
	verdict, _ := a.Verdict()

	modes := make([]string, 0, len(info.Modes))
	for _, m := range info.Modes {
		modes = append(modes, m.String())
	}

	return &domain.RunReport{
		Meta: domain.RunMeta{
			RunID:           info.RunID,
			Detector:        info.Detector,
			TotalCases:      a.Len(),
			ScheduledCases:  a.Scheduled(),
			Interrupted:     a.Incomplete(),
			PassedCases:     a.Passed(),
			FailedCases:     a.Failed(),
			Modes:           modes,
			Skipped:         info.Skipped,
			Verdict:         verdict,
			Duration:        info.Duration.String(),
			DurationSeconds: info.Duration.Seconds(),
			Timestamp:       info.Finished.Format(time.RFC3339),
		},
		Cases: a.Results(),
	}
}
