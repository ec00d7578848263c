package docstore

import (
	"context"
	"errors"
)

// Op is a comparison operator used in query filters.
type Op string

const (
	// OpEqual matches documents whose field equals the filter value.
	OpEqual Op = "=="
	// OpLessOrEqual matches documents whose field is less than or equal
	// to the filter value.
	OpLessOrEqual Op = "<="
	// OpGreaterOrEqual matches documents whose field is greater than or
	// equal to the filter value.
	OpGreaterOrEqual Op = ">="
)

// ErrNotFound is returned by Collection.Get when no document exists
// under the requested id.
var ErrNotFound = errors.New("docstore: document not found")

// Fields is the schemaless payload of a document. Values are restricted
// to what JSON round-trips cleanly: strings, bools, float64, time.Time,
// nested maps and slices.
type Fields = map[string]any

// Document is a single stored record.
type Document struct {
	Collection string
	ID         string
	Fields     Fields
}

// Filter restricts a query to documents whose field satisfies the
// comparison. Filters on the same query are ANDed.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Where is shorthand for constructing a Filter.
func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Collection provides access to the documents stored under one name.
type Collection interface {
	// Get retrieves a single document by id. Returns ErrNotFound if the
	// document does not exist.
	Get(ctx context.Context, id string) (Document, error)

	// Set upserts a document. Supplied fields are merged over any
	// existing fields; fields not mentioned are left untouched.
	Set(ctx context.Context, id string, fields Fields) error

	// Query returns all documents matching every filter. No filters
	// returns the whole collection. Result order is unspecified.
	Query(ctx context.Context, filters ...Filter) ([]Document, error)

	// Delete removes a document by id. Deleting a nonexistent id is a
	// no-op.
	Delete(ctx context.Context, id string) error
}

// WriteBatch accumulates delete operations and commits them atomically.
// A batch may be committed at most once; staging more operations after
// Commit is a programming error.
type WriteBatch interface {
	// Delete stages the removal of a document. Nonexistent ids commit
	// as no-ops.
	Delete(collection, id string)

	// Len reports the number of staged operations.
	Len() int

	// Commit applies every staged operation in one atomic write.
	Commit(ctx context.Context) error
}

// Store is a minimal document store: named collections of schemaless
// records, point reads, merge writes, filtered queries and atomic
// batched deletes. Engines receive a Store explicitly; there is no
// package-level handle.
type Store interface {
	Collection(name string) Collection
	Batch() WriteBatch
	Close() error
}
