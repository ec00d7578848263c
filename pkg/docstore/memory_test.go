package docstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestMemoryStore_SetAndGet tests basic write and point-read behavior.
func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	items := store.Collection("items")

	err := items.Set(ctx, "item-1", Fields{
		"title":  "Lost wallet",
		"status": "lost",
	})
	if err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	doc, err := items.Get(ctx, "item-1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if doc.ID != "item-1" {
		t.Errorf("Expected id item-1, got %s", doc.ID)
	}
	if doc.Fields["title"] != "Lost wallet" {
		t.Errorf("Expected title %q, got %v", "Lost wallet", doc.Fields["title"])
	}
}

// TestMemoryStore_GetNotFound tests that missing documents return ErrNotFound.
func TestMemoryStore_GetNotFound(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	_, err := store.Collection("items").Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestMemoryStore_SetMerges tests that Set merges fields over an
// existing document instead of replacing it.
func TestMemoryStore_SetMerges(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	items := store.Collection("items")

	_ = items.Set(ctx, "item-1", Fields{"title": "Lost wallet", "category": "wallets"})
	_ = items.Set(ctx, "item-1", Fields{"status": "found"})

	doc, err := items.Get(ctx, "item-1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if doc.Fields["category"] != "wallets" {
		t.Errorf("Merge lost existing field category: %v", doc.Fields["category"])
	}
	if doc.Fields["status"] != "found" {
		t.Errorf("Merge dropped new field status: %v", doc.Fields["status"])
	}
}

// TestMemoryStore_GetReturnsCopy tests that mutating a returned
// document does not leak back into the store.
func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	items := store.Collection("items")

	_ = items.Set(ctx, "item-1", Fields{"title": "Lost wallet"})

	doc, _ := items.Get(ctx, "item-1")
	doc.Fields["title"] = "mutated"

	again, _ := items.Get(ctx, "item-1")
	if again.Fields["title"] != "Lost wallet" {
		t.Errorf("Store document mutated through returned copy: %v", again.Fields["title"])
	}
}

// TestMemoryStore_QueryFilters tests equality and time-cutoff filters.
func TestMemoryStore_QueryFilters(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	items := store.Collection("items")
	now := time.Now()

	_ = items.Set(ctx, "old-found", Fields{"status": "found", "foundAt": now.Add(-48 * time.Hour)})
	_ = items.Set(ctx, "new-found", Fields{"status": "found", "foundAt": now.Add(-1 * time.Hour)})
	_ = items.Set(ctx, "lost", Fields{"status": "lost"})

	docs, err := items.Query(ctx,
		Where("status", OpEqual, "found"),
		Where("foundAt", OpLessOrEqual, now.Add(-24*time.Hour)),
	)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(docs))
	}
	if docs[0].ID != "old-found" {
		t.Errorf("Expected old-found, got %s", docs[0].ID)
	}
}

// TestMemoryStore_QueryNoFilters tests that an unfiltered query returns
// the whole collection.
func TestMemoryStore_QueryNoFilters(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	prefs := store.Collection("notification_preferences")

	_ = prefs.Set(ctx, "u1", Fields{"emailEnabled": true})
	_ = prefs.Set(ctx, "u2", Fields{"emailEnabled": false})

	docs, err := prefs.Query(ctx)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("Expected 2 documents, got %d", len(docs))
	}
}

// TestMemoryStore_QueryMissingField tests that documents lacking the
// filtered field never match.
func TestMemoryStore_QueryMissingField(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	items := store.Collection("items")

	_ = items.Set(ctx, "no-found-at", Fields{"status": "found"})

	docs, err := items.Query(ctx, Where("foundAt", OpLessOrEqual, time.Now()))
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Expected 0 documents, got %d", len(docs))
	}
}

// TestMemoryStore_DeleteNonexistent tests that deleting a missing id is
// a no-op.
func TestMemoryStore_DeleteNonexistent(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	if err := store.Collection("items").Delete(context.Background(), "ghost"); err != nil {
		t.Errorf("Delete() of nonexistent id failed: %v", err)
	}
}

// TestMemoryStore_BatchCommit tests atomic batched deletion across
// collections.
func TestMemoryStore_BatchCommit(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	_ = store.Collection("conversations").Set(ctx, "conv-1", Fields{"itemId": "item-1"})
	_ = store.Collection("messages").Set(ctx, "msg-1", Fields{"conversationId": "conv-1"})
	_ = store.Collection("messages").Set(ctx, "msg-2", Fields{"conversationId": "conv-1"})

	batch := store.Batch()
	batch.Delete("messages", "msg-1")
	batch.Delete("messages", "msg-2")
	batch.Delete("conversations", "conv-1")

	if batch.Len() != 3 {
		t.Errorf("Expected 3 staged operations, got %d", batch.Len())
	}

	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	if store.Size("messages") != 0 {
		t.Errorf("Expected empty messages collection, got %d", store.Size("messages"))
	}
	if store.Size("conversations") != 0 {
		t.Errorf("Expected empty conversations collection, got %d", store.Size("conversations"))
	}
}

// TestMemoryStore_BatchDoubleCommit tests that committing a batch twice
// is rejected.
func TestMemoryStore_BatchDoubleCommit(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	batch := store.Batch()
	batch.Delete("items", "item-1")

	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("First Commit() failed: %v", err)
	}
	if err := batch.Commit(ctx); err == nil {
		t.Error("Second Commit() should have failed")
	}
}
