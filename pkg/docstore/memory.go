package docstore

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// MemoryStore implements the Store interface using in-memory maps.
// It backs the development mode and the engine test suites; data does
// not survive a restart.
type MemoryStore struct {
	collections map[string]map[string]Fields
	mu          sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Fields),
	}
}

// Collection returns a handle to the named collection.
func (s *MemoryStore) Collection(name string) Collection {
	return &memoryCollection{store: s, name: name}
}

// Batch opens a new write batch against this store.
func (s *MemoryStore) Batch() WriteBatch {
	return &memoryBatch{store: s}
}

// Close releases the store. All data is dropped.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections = make(map[string]map[string]Fields)
	return nil
}

// Clear removes all documents from storage (for testing).
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections = make(map[string]map[string]Fields)
}

// Size returns the number of documents in a collection (for testing).
func (s *MemoryStore) Size(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.collections[collection])
}

type memoryCollection struct {
	store *MemoryStore
	name  string
}

// Get retrieves a single document by id.
func (c *memoryCollection) Get(ctx context.Context, id string) (Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	fields, ok := c.store.collections[c.name][id]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s/%s", ErrNotFound, c.name, id)
	}

	return Document{Collection: c.name, ID: id, Fields: maps.Clone(fields)}, nil
}

// Set merges the supplied fields over any existing document.
func (c *memoryCollection) Set(ctx context.Context, id string, fields Fields) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	coll, ok := c.store.collections[c.name]
	if !ok {
		coll = make(map[string]Fields)
		c.store.collections[c.name] = coll
	}

	existing, ok := coll[id]
	if !ok {
		existing = make(Fields, len(fields))
		coll[id] = existing
	}
	maps.Copy(existing, maps.Clone(fields))

	return nil
}

// Query returns copies of every document matching all filters.
func (c *memoryCollection) Query(ctx context.Context, filters ...Filter) ([]Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	var results []Document
	for id, fields := range c.store.collections[c.name] {
		if matches(fields, filters) {
			results = append(results, Document{Collection: c.name, ID: id, Fields: maps.Clone(fields)})
		}
	}

	return results, nil
}

// Delete removes a document. Nonexistent ids are a no-op.
func (c *memoryCollection) Delete(ctx context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	delete(c.store.collections[c.name], id)
	return nil
}

type batchOp struct {
	collection string
	id         string
}

type memoryBatch struct {
	store     *MemoryStore
	ops       []batchOp
	committed bool
}

// Delete stages the removal of a document.
func (b *memoryBatch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{collection: collection, id: id})
}

// Len reports the number of staged operations.
func (b *memoryBatch) Len() int {
	return len(b.ops)
}

// Commit applies every staged delete under a single lock acquisition,
// so the batch is atomic with respect to concurrent readers.
func (b *memoryBatch) Commit(ctx context.Context) error {
	if b.committed {
		return NewStorageError("memory", "commit", fmt.Errorf("batch already committed"))
	}
	b.committed = true

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	for _, op := range b.ops {
		delete(b.store.collections[op.collection], op.id)
	}

	return nil
}
