package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"campusfound/beacon/pkg/cli"
	"campusfound/beacon/pkg/config"
	"campusfound/beacon/pkg/lifecycle/retention"
	"campusfound/beacon/pkg/telemetry/logging"
	"campusfound/beacon/pkg/telemetry/metrics"
)

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Beacon lifecycle daemon",
	Long: `Start the Beacon lifecycle daemon with the specified configuration.

The daemon runs the retention scheduler, watches the configuration file
for changes, and optionally serves Prometheus metrics.

Examples:
  # Start with defaults
  beacon run

  # Start with custom config
  beacon run --config /etc/beacon/beacon.yaml

  # Validate config without starting the daemon
  beacon run --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the daemon")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.Setup(cfg.Logging)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	store, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer store.Close()
	fmt.Printf("✓ Storage ready (%s)\n", cfg.Storage.Backend)

	ctx := cli.SetupSignalHandler()

	// Metrics endpoint
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(&metrics.Config{
			Enabled:       true,
			ListenAddress: cfg.Metrics.ListenAddress,
		}, nil)

		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		server := &http.Server{
			Addr:    cfg.Metrics.ListenAddress,
			Handler: mux,
		}
		go func() {
			logger.Info("metrics endpoint listening", "address", cfg.Metrics.ListenAddress)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
		fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.Metrics.ListenAddress)
	}

	// Retention scheduler
	cleaner := retention.NewCleaner(store, &cfg.Cleanup, collector)
	if err := cleaner.Start(ctx); err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to start cleanup scheduler: %w", err))
	}
	defer cleaner.Stop()

	if next := cleaner.NextCleanup(); next != nil {
		fmt.Printf("✓ Cleanup scheduled (%s), next run %s\n",
			cfg.Cleanup.Schedule, next.Format(time.RFC3339))
	} else {
		fmt.Println("✓ Scheduled cleanup disabled")
	}

	// Config hot reload: retention toggles and thresholds retarget
	// without a restart.
	if cfgFile != "" {
		watcher, err := config.NewWatcher(cfgFile, slog.Default().With("component", "config.watcher"))
		if err != nil {
			logger.Warn("config watcher unavailable", "error", err)
		} else {
			go func() {
				err := watcher.Watch(ctx, func(next *config.Config) {
					cleaner.SetConfig(&next.Cleanup)
					logger.Info("cleanup configuration updated",
						"found_items_enabled", next.Cleanup.FoundItems.Enabled,
						"stale_conversations_enabled", next.Cleanup.StaleConversations.Enabled,
					)
				})
				if err != nil {
					logger.Error("config watcher exited", "error", err)
				}
			}()
			defer func() { _ = watcher.Stop() }()
		}
	}

	fmt.Println("\nPress Ctrl+C to stop")

	<-ctx.Done()
	fmt.Println("\nShutting down gracefully...")
	return nil
}
