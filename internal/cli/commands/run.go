package commands

import (
	"fmt"
	"time"

	"contracheck/internal/config"
	"contracheck/internal/domain"
	"contracheck/internal/execution"
	"contracheck/internal/fixtures"
	"contracheck/internal/history"
	"contracheck/internal/report"
	"contracheck/internal/storage"
	"contracheck/internal/ui"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *fixtures.Filter
	scheduler execution.Scheduler
	storage   storage.Storage
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *fixtures.Filter,
	scheduler execution.Scheduler,
	st storage.Storage,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		scheduler: scheduler,
		storage:   st,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.config
	formatter := ui.NewFormatter(cmd.OutOrStdout())
	warn := color.New(color.FgYellow)

	selection, err := selectModes(cfg)
	if err != nil {
		return err
	}

	invoker := execution.NewInvoker(cfg)
	formatter.PrintBanner(invoker.Path())
	formatter.PrintSkipped(selection.Skipped)

	// Nothing is invoked without a runnable detector
	if err := execution.CheckExecutable(invoker.Path()); err != nil {
		return err
	}

	pairs, err := loadPairs(cfg, rc.filter)
	if err != nil {
		return err
	}

	cases := rc.scheduler.Schedule(pairs, selection.Modes)
	if len(cases) == 0 {
		return domain.ErrNoTestCases
	}

	runner := execution.NewCaseRunner(invoker, formatter)
	executor := execution.NewSequentialExecutor(runner)
	if cfg.Flags.Progress {
		executor.SetProgress(ui.NewProgressBar(len(cases), cmd.ErrOrStderr()))
	}

	agg := report.NewAggregator()
	agg.SetScheduled(len(cases))
	duration, execErr := executor.Execute(cmd.Context(), cases, agg)

	formatter.PrintSummary(agg.Summary(), agg.Results())

	rep := agg.Build(report.RunInfo{
		RunID:    uuid.Must(uuid.NewV7()).String(),
		Detector: invoker.Path(),
		Modes:    selection.Modes,
		Skipped:  selection.Skipped,
		Duration: duration,
		Finished: time.Now(),
	})

	// Persistence problems are reported but never change the verdict
	if err := rc.storage.Save(rep); err != nil {
		warn.Fprintf(cmd.ErrOrStderr(), "Warning: failed to save run report: %v\n", err)
	}
	if err := recordHistory(cmd, cfg.HistoryDSN, rep); err != nil {
		warn.Fprintf(cmd.ErrOrStderr(), "Warning: failed to record run history: %v\n", err)
	}

	if execErr != nil {
		return execErr
	}
	verdict, err := agg.Verdict()
	if err != nil {
		return err
	}
	if !verdict {
		return domain.ErrVerdictFailed
	}
	return nil
}

func recordHistory(cmd *cobra.Command, dsn string, rep *domain.RunReport) error {
	recorder, err := history.Open(dsn)
	if err != nil {
		return err
	}
	defer recorder.Close()

	if err := recorder.Record(cmd.Context(), rep); err != nil {
		return fmt.Errorf("record run %s: %w", rep.Meta.RunID, err)
	}
	return nil
}
