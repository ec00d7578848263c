package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusfound/beacon/pkg/docstore"
	"campusfound/beacon/pkg/lifecycle"
	"campusfound/beacon/pkg/lifecycle/lookup"
	"campusfound/beacon/pkg/lifecycle/normalize"
	"campusfound/beacon/pkg/telemetry/metrics"
)

// Cleaner enforces the retention policies on conversations and their
// messages. Each run is stateless: the cleaner holds a store handle and
// configuration, nothing else, and any run may be repeated safely.
type Cleaner struct {
	store     docstore.Store
	config    *Config
	logger    *slog.Logger
	metrics   *metrics.Collector
	scheduler *Scheduler
	now       func() time.Time
}

// NewCleaner creates a new retention cleaner. The metrics collector may
// be nil.
func NewCleaner(store docstore.Store, config *Config, collector *metrics.Collector) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}

	cleaner := &Cleaner{
		store:   store,
		config:  config,
		logger:  slog.Default().With("component", "lifecycle.retention"),
		metrics: collector,
		now:     time.Now,
	}

	cleaner.scheduler = NewScheduler(cleaner)

	return cleaner
}

// SetConfig swaps the retention configuration. Used by config hot
// reload to flip policy toggles without restarting the daemon.
func (c *Cleaner) SetConfig(config *Config) {
	if config != nil {
		c.config = config
	}
}

// FoundItemsSummary reports the work done by the resolved-item policy.
type FoundItemsSummary struct {
	// Cleaned is the number of expired found items whose conversations
	// were actually purged this run.
	Cleaned              int `json:"cleaned"`
	ConversationsDeleted int `json:"conversationsDeleted"`
	MessagesDeleted      int `json:"messagesDeleted"`
}

// StaleConversationsSummary reports the work done by the stale
// conversation policy.
type StaleConversationsSummary struct {
	// Cleaned is the number of stale conversations purged this run.
	Cleaned         int `json:"cleaned"`
	MessagesDeleted int `json:"messagesDeleted"`
}

// Summary is the structured result of one cleanup run, consumed by the
// invoking operator or scheduler.
type Summary struct {
	Timestamp                 time.Time                 `json:"timestamp"`
	FoundItemsCleanup         FoundItemsSummary         `json:"foundItemsCleanup"`
	OldConversationsCleanup   StaleConversationsSummary `json:"oldConversationsCleanup"`
	TotalConversationsDeleted int                       `json:"totalConversationsDeleted"`
	TotalMessagesDeleted      int                       `json:"totalMessagesDeleted"`
}

// String renders the summary for human consumption; the cleanup
// command's text output goes through it.
func (s *Summary) String() string {
	return fmt.Sprintf(
		"Cleanup completed at %s\n"+
			"  Found items cleaned:         %d (%d conversations, %d messages)\n"+
			"  Stale conversations cleaned: %d (%d messages)\n"+
			"  Total conversations deleted: %d\n"+
			"  Total messages deleted:      %d",
		s.Timestamp.Format("2006-01-02 15:04:05"),
		s.FoundItemsCleanup.Cleaned,
		s.FoundItemsCleanup.ConversationsDeleted,
		s.FoundItemsCleanup.MessagesDeleted,
		s.OldConversationsCleanup.Cleaned,
		s.OldConversationsCleanup.MessagesDeleted,
		s.TotalConversationsDeleted,
		s.TotalMessagesDeleted,
	)
}

// PurgeResolvedItemConversations selects items resolved (found) longer
// ago than the threshold and purges every conversation attached to
// them. Items themselves are never deleted.
func (c *Cleaner) PurgeResolvedItemConversations(ctx context.Context) (FoundItemsSummary, error) {
	var summary FoundItemsSummary

	cutoff := c.now().Add(-time.Duration(c.config.FoundItems.ThresholdHours) * time.Hour)

	items, err := c.store.Collection(lifecycle.CollectionItems).Query(ctx,
		docstore.Where("status", docstore.OpEqual, string(lifecycle.StatusFound)),
		docstore.Where("foundAt", docstore.OpLessOrEqual, cutoff),
	)
	if err != nil {
		return summary, docstore.NewStorageError("", "query expired found items", err)
	}

	c.logger.Debug("selected expired found items",
		"cutoff", cutoff,
		"item_count", len(items),
	)

	for _, doc := range items {
		item := normalize.ItemFromDocument(doc)

		targets, err := c.conversationsForItem(ctx, item.ID)
		if err != nil {
			c.logger.Error("conversation lookup failed, skipping item",
				"item_id", item.ID,
				"error", err,
			)
			continue
		}
		if len(targets) == 0 {
			continue
		}

		result := c.Purge(ctx, targets)
		if result.ConversationsDeleted > 0 {
			summary.Cleaned++
			summary.ConversationsDeleted += result.ConversationsDeleted
			summary.MessagesDeleted += result.MessagesDeleted
		}
	}

	c.metrics.RecordPolicyPurge("found_items", summary.ConversationsDeleted, summary.MessagesDeleted)

	return summary, nil
}

// PurgeStaleConversations selects conversations older than the
// threshold, regardless of the referenced item's status, and purges
// them with their messages.
func (c *Cleaner) PurgeStaleConversations(ctx context.Context) (StaleConversationsSummary, error) {
	var summary StaleConversationsSummary

	cutoff := c.now().AddDate(0, 0, -c.config.StaleConversations.ThresholdDays)

	docs, err := c.store.Collection(lifecycle.CollectionConversations).Query(ctx,
		docstore.Where("createdAt", docstore.OpLessOrEqual, cutoff),
	)
	if err != nil {
		return summary, docstore.NewStorageError("", "query stale conversations", err)
	}

	c.logger.Debug("selected stale conversations",
		"cutoff", cutoff,
		"conversation_count", len(docs),
	)

	targets := make([]string, 0, len(docs))
	for _, doc := range docs {
		targets = append(targets, doc.ID)
	}

	result := c.Purge(ctx, targets)
	summary.Cleaned = result.ConversationsDeleted
	summary.MessagesDeleted = result.MessagesDeleted

	c.metrics.RecordPolicyPurge("stale_conversations", result.ConversationsDeleted, result.MessagesDeleted)

	return summary, nil
}

// conversationsForItem resolves the conversation ids attached to an
// item. The relation exists under two spellings in stored data, so
// resolution goes through ordered lookup strategies.
func (c *Cleaner) conversationsForItem(ctx context.Context, itemID string) ([]string, error) {
	conversations := c.store.Collection(lifecycle.CollectionConversations)

	docs, err := lookup.First(ctx, c.logger, []lookup.Strategy[docstore.Document]{
		{Name: "itemId", Run: func(ctx context.Context) ([]docstore.Document, error) {
			return conversations.Query(ctx, docstore.Where("itemId", docstore.OpEqual, itemID))
		}},
		{Name: "legacy item_id", Run: func(ctx context.Context) ([]docstore.Document, error) {
			return conversations.Query(ctx, docstore.Where("item_id", docstore.OpEqual, itemID))
		}},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// RunCleanup executes every enabled retention policy followed by its
// cascade and returns the aggregated summary. A policy failure is
// logged and reported as zero work; the run itself fails only when
// every enabled policy failed.
func (c *Cleaner) RunCleanup(ctx context.Context) (*Summary, error) {
	start := c.now()
	summary := &Summary{Timestamp: start}

	enabled, failed := 0, 0
	var lastErr error

	if c.config.FoundItems.Enabled {
		enabled++
		found, err := c.PurgeResolvedItemConversations(ctx)
		if err != nil {
			failed++
			lastErr = err
			c.logger.Error("found-items policy failed", "error", err)
		} else {
			summary.FoundItemsCleanup = found
		}
	}

	if c.config.StaleConversations.Enabled {
		enabled++
		stale, err := c.PurgeStaleConversations(ctx)
		if err != nil {
			failed++
			lastErr = err
			c.logger.Error("stale-conversations policy failed", "error", err)
		} else {
			summary.OldConversationsCleanup = stale
		}
	}

	summary.TotalConversationsDeleted = summary.FoundItemsCleanup.ConversationsDeleted + summary.OldConversationsCleanup.Cleaned
	summary.TotalMessagesDeleted = summary.FoundItemsCleanup.MessagesDeleted + summary.OldConversationsCleanup.MessagesDeleted

	status := "success"
	var runErr error
	switch {
	case enabled > 0 && failed == enabled:
		status = "error"
		runErr = lastErr
	case failed > 0:
		status = "partial"
	}

	c.metrics.RecordCleanupRun(status, c.now().Sub(start))

	c.logger.Info("cleanup run completed",
		"status", status,
		"conversations_deleted", summary.TotalConversationsDeleted,
		"messages_deleted", summary.TotalMessagesDeleted,
		"found_items_cleaned", summary.FoundItemsCleanup.Cleaned,
		"stale_conversations_cleaned", summary.OldConversationsCleanup.Cleaned,
	)

	return summary, runErr
}

// Start starts the automatic cleanup scheduler.
// Call this when starting the application.
func (c *Cleaner) Start(ctx context.Context) error {
	return c.scheduler.Start(ctx)
}

// Stop stops the automatic cleanup scheduler.
// Call this during graceful shutdown.
func (c *Cleaner) Stop() {
	c.scheduler.Stop()
}

// NextCleanup returns the time of the next scheduled cleanup.
func (c *Cleaner) NextCleanup() *time.Time {
	return c.scheduler.NextRun()
}
