package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"campusfound/beacon/pkg/cli"
	"campusfound/beacon/pkg/lifecycle"
	"campusfound/beacon/pkg/lifecycle/match"
	"campusfound/beacon/pkg/lifecycle/normalize"
	"campusfound/beacon/pkg/telemetry/logging"
)

var fanoutCmd = &cobra.Command{
	Use:   "fanout <item-id>",
	Short: "Fan out match notifications for a stored item",
	Long: `Evaluate every user's notification preferences against the given item
and write a notification for each match. The item's owner is never
notified about their own report.

This runs the same evaluation the daemon performs when a new item is
reported, synchronously, which makes it useful for backfilling
notifications or debugging why a match did or did not fire.`,
	Args: cobra.ExactArgs(1),
	RunE: runFanout,
}

func init() {
	rootCmd.AddCommand(fanoutCmd)
}

func runFanout(cmd *cobra.Command, args []string) error {
	itemID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("fanout", err)
	}
	if !cfg.Fanout.Enabled {
		return cli.NewCommandError("fanout", fmt.Errorf("notification fan-out is disabled in configuration"))
	}

	if _, err := logging.Setup(cfg.Logging); err != nil {
		return cli.NewCommandError("fanout", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("fanout", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	doc, err := store.Collection(lifecycle.CollectionItems).Get(ctx, itemID)
	if err != nil {
		return cli.NewCommandError("fanout", fmt.Errorf("item %s: %w", itemID, err))
	}
	item := normalize.ItemFromDocument(doc)

	matcher := match.NewMatcher(store, nil)
	results, err := matcher.Notify(ctx, item)
	if err != nil {
		return cli.NewCommandError("fanout", err)
	}

	notified, failed := 0, 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Printf("  ✗ %s: %v\n", result.UserID, result.Err)
			continue
		}
		notified++
		fmt.Printf("  ✓ %s (%s)\n", result.UserID, result.MatchReason)
	}
	fmt.Printf("Notified %d users for item %s", notified, itemID)
	if failed > 0 {
		fmt.Printf(", %d writes failed", failed)
	}
	fmt.Println()
	return nil
}
