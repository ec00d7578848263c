package docstore

import "fmt"

// StorageError represents a failed operation against a storage backend.
// These are the transient failures of the system: the caller logs them
// and relies on the next scheduled invocation rather than retrying
// in-line.
type StorageError struct {
	Backend   string // backend type ("memory", "sqlite")
	Operation string // operation that failed ("get", "set", "query", "commit")
	Cause     error  // underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}
