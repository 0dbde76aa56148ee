package commands

import (
	"contracheck/internal/config"
	"contracheck/internal/domain"
	"contracheck/internal/storage"
	"contracheck/internal/ui"

	"github.com/spf13/cobra"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	rep, err := fc.storage.Load()
	if err != nil {
		return err
	}

	if fc.config.Flags.Mode != "" {
		mode, err := domain.ParseExecutionMode(fc.config.Flags.Mode)
		if err != nil {
			return err
		}
		rep = rep.ForMode(mode)
	}

	if fc.config.Flags.Plain {
		ui.NewFormatter(cmd.OutOrStdout()).PrintFailures(rep)
		return nil
	}
	return fc.viewer.View(rep)
}
