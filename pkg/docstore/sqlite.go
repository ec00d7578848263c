package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// sqlTimeFormat is the fixed-width RFC 3339 layout used for time values
// inside stored JSON. Fixed width keeps lexicographic comparison in SQL
// consistent with chronological order.
const sqlTimeFormat = "2006-01-02T15:04:05.000000000Z"

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/beacon.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements the Store interface using SQLite. Documents
// are kept as JSON payloads in a single table; query filters translate
// to json_extract comparisons.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "docstore.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		_, err := s.db.Exec("PRAGMA journal_mode=WAL;")
		if err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs))
	if err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	_, err = s.db.Exec(Schema)
	if err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	_, err = s.db.Exec(InsertSchemaVersion, SchemaVersion)
	if err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err = s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}

	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)

	return nil
}

// Collection returns a handle to the named collection.
func (s *SQLiteStore) Collection(name string) Collection {
	return &sqliteCollection{store: s, name: name}
}

// Batch opens a new transactional write batch.
func (s *SQLiteStore) Batch() WriteBatch {
	return &sqliteBatch{store: s}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	return nil
}

type sqliteCollection struct {
	store *SQLiteStore
	name  string
}

// Get retrieves a single document by id.
func (c *sqliteCollection) Get(ctx context.Context, id string) (Document, error) {
	var raw string
	err := c.store.db.QueryRowContext(ctx,
		"SELECT fields FROM documents WHERE collection = ? AND id = ?",
		c.name, id,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return Document{}, fmt.Errorf("%w: %s/%s", ErrNotFound, c.name, id)
	}
	if err != nil {
		return Document{}, NewStorageError("sqlite", "get", err)
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return Document{}, NewStorageError("sqlite", "get", err)
	}

	return Document{Collection: c.name, ID: id, Fields: fields}, nil
}

// Set upserts a document, merging the supplied fields over any existing
// payload via json_patch.
func (c *sqliteCollection) Set(ctx context.Context, id string, fields Fields) error {
	payload, err := encodeFields(fields)
	if err != nil {
		return NewStorageError("sqlite", "set", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, fields) VALUES (?, ?, json(?))
		ON CONFLICT(collection, id) DO UPDATE SET fields = json_patch(fields, excluded.fields)`,
		c.name, id, payload,
	)
	if err != nil {
		return NewStorageError("sqlite", "set", err)
	}

	return nil
}

// Query returns all documents matching every filter. Filters translate
// to json_extract comparisons on the stored payload.
func (c *sqliteCollection) Query(ctx context.Context, filters ...Filter) ([]Document, error) {
	var sb strings.Builder
	sb.WriteString("SELECT id, fields FROM documents WHERE collection = ?")
	args := []any{c.name}

	for _, f := range filters {
		op, err := sqlOp(f.Op)
		if err != nil {
			return nil, NewStorageError("sqlite", "query", err)
		}
		fmt.Fprintf(&sb, " AND json_extract(fields, '$.%s') %s ?", f.Field, op)
		args = append(args, encodeFieldValue(f.Value))
	}

	rows, err := c.store.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	var results []Document
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, NewStorageError("sqlite", "query", err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, NewStorageError("sqlite", "query", err)
		}
		results = append(results, Document{Collection: c.name, ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}

	return results, nil
}

// Delete removes a document. Nonexistent ids are a no-op.
func (c *sqliteCollection) Delete(ctx context.Context, id string) error {
	_, err := c.store.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?", c.name, id)
	if err != nil {
		return NewStorageError("sqlite", "delete", err)
	}
	return nil
}

type sqliteBatch struct {
	store     *SQLiteStore
	ops       []batchOp
	committed bool
}

// Delete stages the removal of a document.
func (b *sqliteBatch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{collection: collection, id: id})
}

// Len reports the number of staged operations.
func (b *sqliteBatch) Len() int {
	return len(b.ops)
}

// Commit applies every staged delete inside a single transaction.
func (b *sqliteBatch) Commit(ctx context.Context) error {
	if b.committed {
		return NewStorageError("sqlite", "commit", fmt.Errorf("batch already committed"))
	}
	b.committed = true

	tx, err := b.store.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("sqlite", "commit", err)
	}

	for _, op := range b.ops {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM documents WHERE collection = ? AND id = ?",
			op.collection, op.id,
		); err != nil {
			tx.Rollback()
			return NewStorageError("sqlite", "commit", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("sqlite", "commit", err)
	}

	return nil
}

// sqlOp maps a filter operator to its SQL form.
func sqlOp(op Op) (string, error) {
	switch op {
	case OpEqual:
		return "=", nil
	case OpLessOrEqual:
		return "<=", nil
	case OpGreaterOrEqual:
		return ">=", nil
	default:
		return "", fmt.Errorf("unsupported filter operator %q", op)
	}
}

// encodeFields marshals a field map to JSON, converting time values to
// the fixed-width layout.
func encodeFields(fields Fields) (string, error) {
	encoded := make(Fields, len(fields))
	for k, v := range fields {
		encoded[k] = encodeFieldValue(v)
	}

	data, err := json.Marshal(encoded)
	if err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}
	return string(data), nil
}

// encodeFieldValue converts time values to the fixed-width layout so
// both storage and filter arguments compare consistently.
func encodeFieldValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(sqlTimeFormat)
	}
	return v
}

// decodeFields unmarshals a stored JSON payload. Time values come back
// as strings; the lifecycle layer's tolerant decoders handle the
// coercion.
func decodeFields(raw string) (Fields, error) {
	var fields Fields
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	return fields, nil
}
