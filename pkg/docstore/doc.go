// Package docstore provides the document store backing the lifecycle
// engines.
//
// # Overview
//
// The docstore package defines a minimal document-store contract
// (named collections of schemaless JSON-like records) and provides two
// implementations:
//
//   - SQLite: Embedded database for single-node deployments
//   - Memory: In-memory storage for testing and development
//
// The contract is intentionally small. Engines interact with the store
// through exactly four primitives: filtered queries, point reads, merge
// writes and atomic batched deletes. Engines receive a Store handle
// explicitly at construction time; there is no package-level connection.
//
// # Basic Usage
//
//	store, err := docstore.NewSQLiteStore(&docstore.SQLiteConfig{
//	    Path: "data/beacon.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	items := store.Collection("items")
//
//	// Merge write
//	err = items.Set(ctx, "item-1", docstore.Fields{
//	    "title":  "Lost wallet",
//	    "status": "found",
//	})
//
//	// Filtered query
//	docs, err := items.Query(ctx,
//	    docstore.Where("status", docstore.OpEqual, "found"),
//	)
//
// # Batched Deletes
//
// WriteBatch accumulates delete operations and commits them in one
// atomic write. Atomicity holds per committed batch only; callers that
// need to delete more records than a single batch should accommodate
// commit-and-reopen chunking themselves.
//
//	batch := store.Batch()
//	batch.Delete("messages", "msg-1")
//	batch.Delete("conversations", "conv-1")
//	if err := batch.Commit(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Deleting a nonexistent id commits as a no-op, which keeps every
// cleanup operation safely re-runnable.
//
// # Thread Safety
//
// Both backends are safe for concurrent use. The SQLite backend runs in
// WAL mode with a busy timeout; the memory backend guards its maps with
// a read-write mutex.
package docstore
