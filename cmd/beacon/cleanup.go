package main

import (
	"os"

	"github.com/spf13/cobra"

	"campusfound/beacon/pkg/cli"
	"campusfound/beacon/pkg/lifecycle/retention"
	"campusfound/beacon/pkg/telemetry/logging"
)

var cleanupFlags struct {
	output string
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Run one cleanup cycle and print the summary",
	Long: `Run every enabled retention policy once and print the resulting
summary. This is the same cycle the daemon runs on its schedule.

Examples:
  # Run with the configured policies
  beacon cleanup

  # Print the summary as JSON
  beacon cleanup --output json`,
	RunE: runCleanupOnce,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().StringVarP(&cleanupFlags.output, "output", "o", "text", "output format (text, json)")
}

func runCleanupOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("cleanup", err)
	}

	if _, err := logging.Setup(cfg.Logging); err != nil {
		return cli.NewCommandError("cleanup", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("cleanup", err)
	}
	defer store.Close()

	cleaner := retention.NewCleaner(store, &cfg.Cleanup, nil)
	summary, err := cleaner.RunCleanup(cmd.Context())
	if err != nil {
		return cli.NewCommandError("cleanup", err)
	}

	formatter := cli.NewFormatter(cli.OutputFormat(cleanupFlags.output))
	return formatter.FormatTo(os.Stdout, summary)
}
