package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"campusfound/beacon/pkg/docstore"
	"campusfound/beacon/pkg/lifecycle"
)

// flakyStore wraps a memory store and fails notification writes for
// selected user ids.
type flakyStore struct {
	*docstore.MemoryStore
	failForUser string
}

func (s *flakyStore) Collection(name string) docstore.Collection {
	return &flakyCollection{Collection: s.MemoryStore.Collection(name), failForUser: s.failForUser}
}

type flakyCollection struct {
	docstore.Collection
	failForUser string
}

func (c *flakyCollection) Set(ctx context.Context, id string, fields docstore.Fields) error {
	if user, _ := fields["userId"].(string); user != "" && user == c.failForUser {
		return fmt.Errorf("simulated write failure for %s", user)
	}
	return c.Collection.Set(ctx, id, fields)
}

func storedNotifications(t *testing.T, store docstore.Store) []lifecycle.Notification {
	t.Helper()

	docs, err := store.Collection(lifecycle.CollectionNotifications).Query(context.Background())
	if err != nil {
		t.Fatalf("Query notifications failed: %v", err)
	}

	var out []lifecycle.Notification
	for _, doc := range docs {
		out = append(out, lifecycle.Notification{
			ID:          doc.ID,
			UserID:      lifecycle.StringField(doc.Fields, "userId"),
			ItemID:      lifecycle.StringField(doc.Fields, "itemId"),
			MatchReason: lifecycle.StringField(doc.Fields, "matchReason"),
			Read:        lifecycle.BoolField(doc.Fields, "read"),
		})
	}
	return out
}

// TestEvaluate_CategorySignal tests the exact, case-sensitive category
// membership signal.
func TestEvaluate_CategorySignal(t *testing.T) {
	item := lifecycle.Item{Category: "wallets"}

	m := Evaluate(item, lifecycle.Preference{Categories: []string{"bags", "wallets"}})
	if m.Category != "wallets" {
		t.Errorf("Expected category hit, got %+v", m)
	}

	// Case-sensitive: Wallets does not match wallets.
	m = Evaluate(item, lifecycle.Preference{Categories: []string{"Wallets"}})
	if m.Matched() {
		t.Errorf("Expected no match for differing case, got %+v", m)
	}
}

// TestEvaluate_KeywordSignal tests the case-insensitive substring
// keyword signal over title + description.
func TestEvaluate_KeywordSignal(t *testing.T) {
	item := lifecycle.Item{Title: "Lost wallet", Description: "black LEATHER, near library"}

	m := Evaluate(item, lifecycle.Preference{Keywords: []string{"leather"}})
	if m.Keyword != "leather" {
		t.Errorf("Expected keyword hit, got %+v", m)
	}

	// Substring across the title/description join.
	m = Evaluate(item, lifecycle.Preference{Keywords: []string{"wallet black"}})
	if m.Keyword != "wallet black" {
		t.Errorf("Expected join-spanning keyword hit, got %+v", m)
	}

	m = Evaluate(item, lifecycle.Preference{Keywords: []string{"umbrella"}})
	if m.Matched() {
		t.Errorf("Expected no match, got %+v", m)
	}
}

// TestMatch_Reason tests reason composition for each signal
// combination.
func TestMatch_Reason(t *testing.T) {
	cases := []struct {
		m    Match
		want string
	}{
		{Match{Category: "wallets"}, "Category: wallets"},
		{Match{Keyword: "leather"}, "Keyword: leather"},
		{Match{Category: "wallets", Keyword: "leather"}, "Category: wallets, Keyword: leather"},
	}
	for _, tc := range cases {
		if got := tc.m.Reason(); got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
}

// TestMatchAndNotify_CategoryScenario tests the canonical wallet
// scenario: a category-only subscriber receives exactly one
// notification referencing the item.
func TestMatchAndNotify_CategoryScenario(t *testing.T) {
	store := docstore.NewMemoryStore()
	matcher := NewMatcher(store, nil)
	ctx := context.Background()

	item := lifecycle.Item{
		ID:          "item-a",
		Title:       "Lost wallet",
		Description: "black leather",
		Category:    "wallets",
		OwnerID:     "u1",
	}
	prefs := []lifecycle.Preference{
		{UserID: "u2", Categories: []string{"wallets"}},
	}

	results := matcher.MatchAndNotify(ctx, item, prefs)
	if len(results) != 1 {
		t.Fatalf("Expected 1 write result, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("Unexpected write error: %v", results[0].Err)
	}

	stored := storedNotifications(t, store)
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored notification, got %d", len(stored))
	}
	n := stored[0]
	if n.UserID != "u2" || n.ItemID != "item-a" {
		t.Errorf("Unexpected notification target: %+v", n)
	}
	if !strings.Contains(n.MatchReason, "Category: wallets") {
		t.Errorf("Expected reason to contain category, got %q", n.MatchReason)
	}
	if n.Read {
		t.Error("Expected notification to start unread")
	}
}

// TestMatchAndNotify_OwnerExcluded tests that the owner's own
// preference never matches their own item.
func TestMatchAndNotify_OwnerExcluded(t *testing.T) {
	store := docstore.NewMemoryStore()
	matcher := NewMatcher(store, nil)

	item := lifecycle.Item{
		ID:       "item-a",
		Title:    "Lost wallet",
		Category: "wallets",
		OwnerID:  "u1",
	}
	prefs := []lifecycle.Preference{
		{UserID: "u1", Categories: []string{"wallets"}, Keywords: []string{"wallet"}},
		{UserID: "u2", Categories: []string{"wallets"}},
	}

	results := matcher.MatchAndNotify(context.Background(), item, prefs)
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].UserID != "u2" {
		t.Errorf("Expected only u2 notified, got %s", results[0].UserID)
	}
}

// TestMatchAndNotify_OnePerMatchedPreference tests fan-out exactness
// across a mixed subscriber population.
func TestMatchAndNotify_OnePerMatchedPreference(t *testing.T) {
	store := docstore.NewMemoryStore()
	matcher := NewMatcher(store, nil)

	item := lifecycle.Item{
		ID:          "item-a",
		Title:       "Found umbrella",
		Description: "blue, left in lecture hall 3",
		Category:    "umbrellas",
		Status:      lifecycle.StatusFound,
		OwnerID:     "u1",
	}
	prefs := []lifecycle.Preference{
		{UserID: "u2", Categories: []string{"umbrellas"}},               // category
		{UserID: "u3", Keywords: []string{"LECTURE HALL"}},              // keyword, case
		{UserID: "u4", Categories: []string{"bags"}},                    // no match
		{UserID: "u5", Categories: []string{"umbrellas"}, Keywords: []string{"blue"}}, // both
	}

	results := matcher.MatchAndNotify(context.Background(), item, prefs)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	stored := storedNotifications(t, store)
	if len(stored) != 3 {
		t.Fatalf("Expected 3 stored notifications, got %d", len(stored))
	}

	byUser := map[string]lifecycle.Notification{}
	for _, n := range stored {
		byUser[n.UserID] = n
	}
	if _, ok := byUser["u4"]; ok {
		t.Error("u4 should not have been notified")
	}
	if reason := byUser["u5"].MatchReason; !strings.Contains(reason, "Category: umbrellas") || !strings.Contains(reason, "Keyword: blue") {
		t.Errorf("Expected combined reason for u5, got %q", reason)
	}
}

// TestMatchAndNotify_WriteFailureIsolated tests per-user failure
// isolation: one failing write does not stop the rest.
func TestMatchAndNotify_WriteFailureIsolated(t *testing.T) {
	store := &flakyStore{MemoryStore: docstore.NewMemoryStore(), failForUser: "u2"}
	matcher := NewMatcher(store, nil)

	item := lifecycle.Item{ID: "item-a", Category: "wallets", OwnerID: "u1"}
	prefs := []lifecycle.Preference{
		{UserID: "u2", Categories: []string{"wallets"}},
		{UserID: "u3", Categories: []string{"wallets"}},
	}

	results := matcher.MatchAndNotify(context.Background(), item, prefs)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	var failed, succeeded *WriteResult
	for i := range results {
		if results[i].UserID == "u2" {
			failed = &results[i]
		} else {
			succeeded = &results[i]
		}
	}

	if failed == nil || failed.Err == nil {
		t.Fatal("Expected u2's write to fail")
	}
	var fanoutErr *lifecycle.FanoutError
	if !errors.As(failed.Err, &fanoutErr) {
		t.Errorf("Expected FanoutError, got %T", failed.Err)
	}
	if succeeded == nil || succeeded.Err != nil {
		t.Fatalf("Expected u3's write to succeed, got %+v", succeeded)
	}

	stored := storedNotifications(t, store)
	if len(stored) != 1 || stored[0].UserID != "u3" {
		t.Errorf("Expected only u3's notification stored, got %+v", stored)
	}
}

// TestDispatch_NonBlocking tests that Dispatch returns immediately and
// the fan-out lands asynchronously, surviving the caller's cancelled
// context.
func TestDispatch_NonBlocking(t *testing.T) {
	store := docstore.NewMemoryStore()
	matcher := NewMatcher(store, nil)
	ctx := context.Background()

	_ = store.Collection(lifecycle.CollectionPreferences).Set(ctx, "u2", docstore.Fields{
		"categories": []string{"wallets"},
	})

	callerCtx, cancel := context.WithCancel(ctx)
	matcher.Dispatch(callerCtx, "item-a", docstore.Fields{
		"title":   "Lost wallet",
		"type":    "wallets",
		"ownerId": "u1",
	})
	// The item-creation request finishes immediately.
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(storedNotifications(t, store)) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Expected notification to be written asynchronously")
}
