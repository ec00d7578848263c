package match

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusfound/beacon/pkg/docstore"
	"campusfound/beacon/pkg/lifecycle"
	"campusfound/beacon/pkg/telemetry/metrics"
)

// Match is the outcome of evaluating one preference against one item.
type Match struct {
	// Category is set when the item's category is an exact member of
	// the preference's category list.
	Category string

	// Keyword is the first preference keyword found in the item text.
	Keyword string
}

// Matched reports whether either signal fired.
func (m Match) Matched() bool {
	return m.Category != "" || m.Keyword != ""
}

// Reason composes the human-readable match reason stored on the
// notification, e.g. "Category: wallets, Keyword: leather".
func (m Match) Reason() string {
	var parts []string
	if m.Category != "" {
		parts = append(parts, "Category: "+m.Category)
	}
	if m.Keyword != "" {
		parts = append(parts, "Keyword: "+m.Keyword)
	}
	return strings.Join(parts, ", ")
}

// Evaluate computes the two match signals for one preference. The
// category signal is an exact, case-sensitive membership test; the
// keyword signal is a case-insensitive substring search over
// title + " " + description.
func Evaluate(item lifecycle.Item, pref lifecycle.Preference) Match {
	var m Match

	for _, category := range pref.Categories {
		if category != "" && category == item.Category {
			m.Category = category
			break
		}
	}

	haystack := strings.ToLower(item.Title + " " + item.Description)
	for _, keyword := range pref.Keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			m.Keyword = keyword
			break
		}
	}

	return m
}

// WriteResult reports the outcome of one matched preference's
// notification write.
type WriteResult struct {
	UserID         string
	NotificationID string
	MatchReason    string
	Err            error
}

// Matcher computes subscriber matches for newly created items and
// writes the resulting notifications.
type Matcher struct {
	store   docstore.Store
	logger  *slog.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

// NewMatcher creates a new matching engine bound to a store handle.
// The metrics collector may be nil.
func NewMatcher(store docstore.Store, collector *metrics.Collector) *Matcher {
	return &Matcher{
		store:   store,
		logger:  slog.Default().With("component", "lifecycle.match"),
		metrics: collector,
		now:     time.Now,
	}
}

// LoadPreferences reads every subscriber preference from the store.
func (m *Matcher) LoadPreferences(ctx context.Context) ([]lifecycle.Preference, error) {
	docs, err := m.store.Collection(lifecycle.CollectionPreferences).Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	prefs := make([]lifecycle.Preference, 0, len(docs))
	for _, doc := range docs {
		prefs = append(prefs, lifecycle.PreferenceFromDocument(doc))
	}
	return prefs, nil
}

// MatchAndNotify evaluates every preference against the item and writes
// one notification per match. The item owner's own preference is
// excluded. Each write is isolated: a failure writing one user's
// notification is logged, recorded on its WriteResult, and does not
// stop evaluation of the remaining preferences.
func (m *Matcher) MatchAndNotify(ctx context.Context, item lifecycle.Item, prefs []lifecycle.Preference) []WriteResult {
	start := m.now()
	notifications := m.store.Collection(lifecycle.CollectionNotifications)

	var results []WriteResult
	created, failures := 0, 0

	for _, pref := range prefs {
		if pref.UserID == "" || pref.UserID == item.OwnerID {
			continue
		}

		result := Evaluate(item, pref)
		if !result.Matched() {
			continue
		}

		notification := lifecycle.Notification{
			ID:          uuid.NewString(),
			UserID:      pref.UserID,
			ItemID:      item.ID,
			MatchReason: result.Reason(),
			Read:        false,
			CreatedAt:   m.now(),
		}

		wr := WriteResult{
			UserID:         pref.UserID,
			NotificationID: notification.ID,
			MatchReason:    notification.MatchReason,
		}

		if err := notifications.Set(ctx, notification.ID, notification.Fields()); err != nil {
			wr.Err = lifecycle.NewFanoutError(pref.UserID, item.ID, err)
			failures++
			m.logger.Error("notification write failed",
				"user_id", pref.UserID,
				"item_id", item.ID,
				"error", err,
			)
		} else {
			created++
			m.logger.Debug("notification created",
				"user_id", pref.UserID,
				"item_id", item.ID,
				"match_reason", notification.MatchReason,
			)
		}

		results = append(results, wr)
	}

	m.metrics.RecordFanout(created, failures, m.now().Sub(start))

	if created > 0 || failures > 0 {
		m.logger.Info("fan-out completed",
			"item_id", item.ID,
			"preferences_evaluated", len(prefs),
			"notifications_created", created,
			"write_failures", failures,
		)
	}

	return results
}

// Notify loads all preferences and runs the full fan-out for one item.
func (m *Matcher) Notify(ctx context.Context, item lifecycle.Item) ([]WriteResult, error) {
	prefs, err := m.LoadPreferences(ctx)
	if err != nil {
		return nil, err
	}
	return m.MatchAndNotify(ctx, item, prefs), nil
}
