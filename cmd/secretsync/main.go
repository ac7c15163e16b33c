package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stackmill/secretsync/cmd/secretsync/commands"
	"github.com/stackmill/secretsync/internal/config"
	"github.com/stackmill/secretsync/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		stage      string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "secretsync",
		Short: "Sync a declarative secrets file with AWS SSM Parameter Store",
		Long: `secretsync keeps a local secrets YAML file and AWS SSM Parameter Store
in sync, writing only entries whose value drifted.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			// Update config with parsed values
			cfg.Path = configFile
			cfg.Stage = stage
			cfg.Logger = logger
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "secretsync.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&stage, "stage", "", "Deployment stage (overrides config default)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Add commands
	rootCmd.AddCommand(
		commands.NewDeployCommand(cfg),
		commands.NewRemoveCommand(cfg),
		commands.NewPullCommand(cfg),
		commands.NewPlanCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
