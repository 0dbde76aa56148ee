package commands

import (
	"contracheck/internal/config"
	"contracheck/internal/execution"
	"contracheck/internal/fixtures"
	"contracheck/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *fixtures.Filter
	scheduler execution.Scheduler
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *fixtures.Filter,
	scheduler execution.Scheduler,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		scheduler: scheduler,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	selection, err := selectModes(lc.config)
	if err != nil {
		return err
	}

	pairs, err := loadPairs(lc.config, lc.filter)
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No fixture pairs found")
		return nil
	}

	cases := lc.scheduler.Schedule(pairs, selection.Modes)
	ui.NewFormatter(cmd.OutOrStdout()).PrintPlan(pairs, cases, selection.Skipped)
	return nil
}
