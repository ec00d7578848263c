package lifecycle

import (
	"testing"
	"time"

	"campusfound/beacon/pkg/docstore"
)

// TestCoerceTime_SecondsObject tests the seconds-based timestamp object
// strategy.
func TestCoerceTime_SecondsObject(t *testing.T) {
	got, ok := CoerceTime(map[string]any{"seconds": float64(1700000000)})
	if !ok {
		t.Fatal("Expected seconds object to parse")
	}
	if got.Unix() != 1700000000 {
		t.Errorf("Expected unix 1700000000, got %d", got.Unix())
	}

	// Underscore-prefixed spelling with nanoseconds.
	got, ok = CoerceTime(map[string]any{"_seconds": float64(1700000000), "_nanoseconds": float64(500)})
	if !ok {
		t.Fatal("Expected _seconds object to parse")
	}
	if got.Nanosecond() != 500 {
		t.Errorf("Expected 500 nanoseconds, got %d", got.Nanosecond())
	}
}

// TestCoerceTime_NativeTime tests the native time value strategy.
func TestCoerceTime_NativeTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	got, ok := CoerceTime(want)
	if !ok {
		t.Fatal("Expected native time to parse")
	}
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestCoerceTime_ISOString tests the ISO date string strategy across
// accepted layouts.
func TestCoerceTime_ISOString(t *testing.T) {
	cases := []string{
		"2024-03-01T12:00:00Z",
		"2024-03-01T12:00:00.123456789Z",
		"2024-03-01T12:00:00",
		"2024-03-01",
	}
	for _, s := range cases {
		got, ok := CoerceTime(s)
		if !ok {
			t.Errorf("Expected %q to parse", s)
			continue
		}
		if got.Year() != 2024 || got.Month() != 3 || got.Day() != 1 {
			t.Errorf("Parsed %q to unexpected date %v", s, got)
		}
	}
}

// TestCoerceTime_EpochMillis tests the epoch-millisecond number
// strategy.
func TestCoerceTime_EpochMillis(t *testing.T) {
	got, ok := CoerceTime(float64(1700000000000))
	if !ok {
		t.Fatal("Expected epoch millis to parse")
	}
	if got.UnixMilli() != 1700000000000 {
		t.Errorf("Expected unix millis 1700000000000, got %d", got.UnixMilli())
	}
}

// TestCoerceTime_Unrecognized tests that unparseable shapes fail
// cleanly.
func TestCoerceTime_Unrecognized(t *testing.T) {
	for _, v := range []any{nil, "not a date", map[string]any{"foo": 1}, true, []any{1}} {
		if _, ok := CoerceTime(v); ok {
			t.Errorf("Expected %v (%T) not to parse", v, v)
		}
	}
}

// TestCoerceTime_StrategyOrder tests that the seconds object wins over
// later strategies for ambiguous map inputs and that each strategy is
// reachable through the exported list.
func TestCoerceTime_StrategyOrder(t *testing.T) {
	wantOrder := []string{"seconds-object", "native-time", "iso-string", "epoch-millis"}
	if len(TimeStrategies) != len(wantOrder) {
		t.Fatalf("Expected %d strategies, got %d", len(wantOrder), len(TimeStrategies))
	}
	for i, s := range TimeStrategies {
		if s.Name != wantOrder[i] {
			t.Errorf("Strategy %d: expected %q, got %q", i, wantOrder[i], s.Name)
		}
	}
}

// TestStringField_Precedence tests first-non-empty key precedence.
func TestStringField_Precedence(t *testing.T) {
	fields := docstore.Fields{"type": "wallets", "category": "bags"}
	if got := StringField(fields, "type", "category"); got != "wallets" {
		t.Errorf("Expected wallets, got %q", got)
	}

	fields = docstore.Fields{"type": "", "category": "bags"}
	if got := StringField(fields, "type", "category"); got != "bags" {
		t.Errorf("Expected fallback to bags, got %q", got)
	}

	// Non-string values read as empty, not coerced.
	fields = docstore.Fields{"type": 42}
	if got := StringField(fields, "type"); got != "" {
		t.Errorf("Expected empty for non-string, got %q", got)
	}
}

// TestStringSliceField_JSONShape tests decoding of []any element lists
// as produced by JSON round-trips.
func TestStringSliceField_JSONShape(t *testing.T) {
	fields := docstore.Fields{"keywords": []any{"leather", "black", 3}}
	got := StringSliceField(fields, "keywords")
	if len(got) != 2 || got[0] != "leather" || got[1] != "black" {
		t.Errorf("Expected [leather black], got %v", got)
	}
}

// TestPreferenceFromDocument tests preference decoding including
// malformed fields.
func TestPreferenceFromDocument(t *testing.T) {
	pref := PreferenceFromDocument(docstore.Document{
		ID: "u2",
		Fields: docstore.Fields{
			"keywords":     []string{"leather"},
			"categories":   []any{"wallets"},
			"emailEnabled": true,
		},
	})

	if pref.UserID != "u2" {
		t.Errorf("Expected user u2, got %s", pref.UserID)
	}
	if len(pref.Keywords) != 1 || pref.Keywords[0] != "leather" {
		t.Errorf("Unexpected keywords: %v", pref.Keywords)
	}
	if len(pref.Categories) != 1 || pref.Categories[0] != "wallets" {
		t.Errorf("Unexpected categories: %v", pref.Categories)
	}
	if !pref.EmailEnabled {
		t.Error("Expected emailEnabled true")
	}

	// Entirely malformed document decodes to zero values, never panics.
	empty := PreferenceFromDocument(docstore.Document{ID: "u3", Fields: docstore.Fields{
		"keywords":     42,
		"emailEnabled": "yes",
	}})
	if len(empty.Keywords) != 0 || empty.EmailEnabled {
		t.Errorf("Expected defaulted preference, got %+v", empty)
	}
}

// TestConversationFromDocument tests conversation decoding with legacy
// field fallback.
func TestConversationFromDocument(t *testing.T) {
	conv := ConversationFromDocument(docstore.Document{
		ID: "conv-1",
		Fields: docstore.Fields{
			"item_id":      "item-9",
			"participants": []any{"u1", "u2"},
			"createdAt":    "2024-03-01T12:00:00Z",
		},
	})

	if conv.ItemID != "item-9" {
		t.Errorf("Expected legacy item_id fallback, got %q", conv.ItemID)
	}
	if conv.CreatedAt == nil || conv.CreatedAt.Year() != 2024 {
		t.Errorf("Expected createdAt to decode, got %v", conv.CreatedAt)
	}
}

// TestMessageFromDocument tests message decoding with legacy field
// fallback.
func TestMessageFromDocument(t *testing.T) {
	msg := MessageFromDocument(docstore.Document{
		ID: "msg-1",
		Fields: docstore.Fields{
			"conversation_id": "conv-9",
			"senderId":        "u1",
			"text":            "is this still around?",
			"timestamp":       "2024-03-01T12:00:00Z",
		},
	})

	if msg.ConversationID != "conv-9" {
		t.Errorf("Expected legacy conversation_id fallback, got %q", msg.ConversationID)
	}
	if msg.SenderID != "u1" || msg.Text != "is this still around?" {
		t.Errorf("Expected sender and text to decode, got %+v", msg)
	}
	if msg.Timestamp == nil || msg.Timestamp.Year() != 2024 {
		t.Errorf("Expected timestamp to decode, got %v", msg.Timestamp)
	}
}
