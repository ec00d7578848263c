package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campusfound/beacon/pkg/config"
	"campusfound/beacon/pkg/docstore"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "beacon",
	Short: "Beacon - lost-and-found lifecycle engine",
	Long: `Beacon is the background lifecycle engine for a campus lost-and-found
marketplace.

It keeps the marketplace's item, conversation, and message records
healthy:
  - Match notification fan-out when new items are reported
  - Retention policies for resolved-item and stale conversations
  - Cascading, batched deletion of conversations and their messages`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration with environment overrides and
// applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// openStore opens the configured document store backend.
func openStore(cfg *config.Config) (docstore.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return docstore.NewSQLiteStore(&docstore.SQLiteConfig{
			Path:         cfg.Storage.SQLite.Path,
			MaxOpenConns: cfg.Storage.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Storage.SQLite.MaxIdleConns,
			WALMode:      cfg.Storage.SQLite.WALMode,
			BusyTimeout:  cfg.Storage.SQLite.BusyTimeout,
		})
	case "memory":
		return docstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}
