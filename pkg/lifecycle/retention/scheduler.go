package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler manages automatic cleanup runs on a schedule. It runs the
// cleaner at the configured cron cadence (hourly is typical).
type Scheduler struct {
	cleaner *Cleaner
	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewScheduler creates a new cleanup scheduler.
func NewScheduler(cleaner *Cleaner) *Scheduler {
	return &Scheduler{
		cleaner: cleaner,
		cron:    cron.New(),
		logger:  slog.Default().With("component", "lifecycle.scheduler"),
	}
}

// Start begins scheduled cleanup based on the cron expression in the
// cleaner's configuration.
//
// Common cron expressions:
//   - "0 * * * *"   - Hourly
//   - "0 3 * * *"   - Daily at 3 AM
//   - "*/15 * * * *" - Every 15 minutes
//
// If the schedule is empty, the scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cleaner.config.Schedule == "" {
		s.logger.Info("cleanup schedule not configured, skipping scheduler")
		return nil
	}

	// Validate cron expression
	_, err := cron.ParseStandard(s.cleaner.config.Schedule)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w",
			s.cleaner.config.Schedule, err)
	}

	_, err = s.cron.AddFunc(s.cleaner.config.Schedule, func() {
		s.runCleanup(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("cleanup scheduler started",
		"schedule", s.cleaner.config.Schedule,
		"found_items_enabled", s.cleaner.config.FoundItems.Enabled,
		"stale_conversations_enabled", s.cleaner.config.StaleConversations.Enabled,
	)

	// Wait for context cancellation in background
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runCleanup executes one cleanup cycle.
func (s *Scheduler) runCleanup(ctx context.Context) {
	s.logger.Info("starting scheduled cleanup")

	summary, err := s.cleaner.RunCleanup(ctx)
	if err != nil {
		s.logger.Error("scheduled cleanup failed",
			"error", err,
		)
		return
	}

	if summary.TotalConversationsDeleted > 0 || summary.TotalMessagesDeleted > 0 {
		s.logger.Info("scheduled cleanup completed",
			"conversations_deleted", summary.TotalConversationsDeleted,
			"messages_deleted", summary.TotalMessagesDeleted,
		)
	} else {
		s.logger.Debug("scheduled cleanup completed, nothing to purge")
	}
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("cleanup scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled cleanup time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
