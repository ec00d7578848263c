// Package retention enforces the conversation retention policies and
// executes the cascading deletion behind them.
//
// # Policies
//
// Two independent, individually toggleable policies select purge
// targets:
//
//   - Found items: once an item has been resolved (status found) for
//     longer than threshold_hours, every conversation attached to it is
//     purged. Items themselves are never deleted.
//   - Stale conversations: any conversation older than threshold_days
//     is purged, whatever the state of its item.
//
// The policies have no ordering dependency and may select overlapping
// sets; purging an already-purged conversation yields nothing.
//
// # Cascade
//
// The store enforces no referential integrity, so the cascade is the
// sole guarantor that no message outlives its conversation: each
// conversation's messages are deleted together with the conversation
// record, staged into atomic batches capped at batch_limit operations.
// When staging would overflow the cap, the current batch is committed
// and a new one opened. Atomicity holds per committed batch only: a
// crash mid-run leaves some conversations purged and others not, which
// is safe because every operation is idempotent and the next scheduled
// run picks up the remainder.
//
// # Failure Model
//
// One conversation's failure (its message query, a batch commit) is
// logged and skipped; the run continues and the summary counts only
// committed work. Nothing here retries in-line; retry is the next
// scheduled invocation.
//
// # Usage
//
//	cleaner := retention.NewCleaner(store, &retention.Config{
//	    StaleConversations: retention.StaleConversationsPolicy{
//	        Enabled:       true,
//	        ThresholdDays: 7,
//	    },
//	    BatchLimit: 500,
//	    Schedule:   "0 * * * *",
//	}, collector)
//
//	// Scheduled:
//	if err := cleaner.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer cleaner.Stop()
//
//	// Or one-shot:
//	summary, err := cleaner.RunCleanup(ctx)
package retention
