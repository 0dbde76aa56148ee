package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"contracheck/internal/cli"
	"contracheck/internal/cli/commands"
	"contracheck/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "contracheck",
		Short:         "Meta-test harness for a code/documentation contradiction detector",
		Long:          `Runs a contradiction detector against fixture pairs with known classifications and checks that it reports them through the expected exit codes. Exits 0 only when every test case passes.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
