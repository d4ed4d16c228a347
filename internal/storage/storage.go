// Package storage persists learner progress as one versioned JSON blob
// per key. The durable implementation sits on SQLite or PostgreSQL; a
// process-lifetime in-memory store covers sessions where the durable
// store is unavailable.
package storage

import "errors"

// ErrNotFound is returned when no document exists under a key
var ErrNotFound = errors.New("document not found")

// Document is one stored progress blob with its schema version
type Document struct {
	Version int
	Data    []byte
}

// Store reads and writes whole progress documents
type Store interface {
	Load(key string) (*Document, error)
	Save(key string, doc *Document) error
	Delete(key string) error
	Close() error
}
