package commands

import (
	"fmt"
	"os"

	"contracheck/internal/cli"
	"contracheck/internal/config"
	"contracheck/internal/domain"
	"contracheck/internal/execution"
	"contracheck/internal/fixtures"
	"contracheck/internal/storage"
	"contracheck/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies. Components that read
// flag-dependent settings are built when a command executes.
func NewCommands(cfg *config.Config) *Commands {
	filter := fixtures.NewFilter()
	scheduler := execution.NewModeMajorScheduler()
	jsonStorage := storage.NewJSONStorage(cfg)
	viewer := ui.NewFailureViewer()

	return &Commands{
		Run:      NewRunCommand(cfg, filter, scheduler, jsonStorage),
		List:     NewListCommand(cfg, filter, scheduler),
		Failures: NewFailuresCommand(cfg, jsonStorage, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Apply(flags.ToConfigFlags())
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the detector against every fixture pair",
		Long:    "Invoke the contradiction detector for each fixture pair in each enabled mode and check its exit codes",
		Args:    cobra.NoArgs,
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	addSelectionFlags(runCmd, flags)
	runCmd.Flags().StringVarP(&flags.Detector, "detector", "d", "", "Path to the detector executable (default \"./"+config.DefaultDetectorPath+"\", env "+config.EnvDetector+")")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-invocation timeout, e.g. 90s (0 disables)")
	runCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
	runCmd.Flags().StringVar(&flags.ModeEnv, "mode-env", "", "Environment variable that selects the detector mode (default \""+config.DefaultModeEnv+"\")")
	runCmd.Flags().StringVar(&flags.OfflineID, "offline-id", "", "Mode value passed to the detector for offline cases (default \""+config.DefaultOfflineID+"\")")
	runCmd.Flags().StringVar(&flags.LiveID, "live-id", "", "Mode value passed to the detector for live cases (default \""+config.DefaultLiveID+"\")")
	runCmd.Flags().StringVar(&flags.HistoryDSN, "history-dsn", "", "MySQL DSN for recording run history (env "+config.EnvHistoryDSN+")")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List fixture pairs and planned test cases",
		Long:    "Load the fixture set and print the (pair, mode) cases a run would execute, without invoking the detector",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	addSelectionFlags(listCmd, flags)
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View failed test cases of the last run",
		Long:    "Display failed test cases from the last run in an interactive viewer",
		Args:    cobra.NoArgs,
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	failuresCmd.Flags().StringVar(&flags.Mode, "mode", "", "Only show failures from one mode (offline or live)")
	failuresCmd.Flags().BoolVar(&flags.Plain, "plain", false, "Print failures instead of opening the interactive viewer")
	rootCmd.AddCommand(failuresCmd)
}

// addSelectionFlags registers the flags that decide which cases are planned.
func addSelectionFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Fixtures, "fixtures", "x", "", "Fixtures root directory (default \""+config.DefaultFixturesPath+"\")")
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter fixture pairs by name: a class (correct), a stem substring (calc), or a wildcard pattern (correct/*, *calc*)")
	cmd.Flags().BoolVar(&flags.OfflineOnly, "offline-only", false, "Skip live mode even when the credential is set")
	cmd.Flags().StringVar(&flags.CredentialEnv, "credential-env", "", "Environment variable holding the live-mode credential (default \""+config.DefaultCredentialEnv+"\")")
	cmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "Dotenv file loaded before the credential check (default \""+config.DefaultEnvFile+"\")")
}

// selectModes loads the env file and decides once which modes run.
func selectModes(cfg *config.Config) (execution.Selection, error) {
	if err := cfg.LoadEnvFile(); err != nil {
		return execution.Selection{}, fmt.Errorf("load env file: %w", err)
	}
	return execution.NewModeSelector(cfg.CredentialEnv, cfg.Flags.OfflineOnly).Select(os.LookupEnv), nil
}

// loadPairs discovers, filters and validates the fixture set.
func loadPairs(cfg *config.Config, filter *fixtures.Filter) ([]domain.FixturePair, error) {
	scanner := fixtures.NewScanner(cfg.ClassificationDirs, cfg.ManifestFile)
	pairs, err := scanner.Scan(cfg.GetFixturesPath())
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}

	pairs = filter.FilterByName(pairs, cfg.Flags.NameFilter)

	if err := fixtures.ValidateAll(pairs); err != nil {
		return nil, fmt.Errorf("invalid fixture set: %w", err)
	}
	return pairs, nil
}
