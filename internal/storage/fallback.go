package storage

import (
	"errors"
	"log"
	"sync"
)

// Fallback wraps a durable store and degrades to an in-memory store when
// the durable one fails. Storage faults never reach the caller: the app
// keeps working for the session and progress is lost on exit, which is
// the accepted trade-off. ErrNotFound is not a fault and passes through.
type Fallback struct {
	primary Store
	memory  *MemoryStore
	once    sync.Once
}

// NewFallback wraps primary with silent in-memory degradation
func NewFallback(primary Store) *Fallback {
	return &Fallback{
		primary: primary,
		memory:  NewMemoryStore(),
	}
}

// Load reads from the durable store, falling back to the in-memory copy
// when the durable read fails or a degraded save left the document there.
func (f *Fallback) Load(key string) (*Document, error) {
	doc, err := f.primary.Load(key)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		f.warn(err)
	}
	return f.memory.Load(key)
}

// Save writes to the durable store, keeping the document in memory
// instead when the write fails.
func (f *Fallback) Save(key string, doc *Document) error {
	if err := f.primary.Save(key, doc); err != nil {
		f.warn(err)
		return f.memory.Save(key, doc)
	}
	return nil
}

// Delete removes the document from both stores
func (f *Fallback) Delete(key string) error {
	if err := f.primary.Delete(key); err != nil {
		f.warn(err)
	}
	return f.memory.Delete(key)
}

// Close closes the durable store
func (f *Fallback) Close() error {
	return f.primary.Close()
}

func (f *Fallback) warn(err error) {
	f.once.Do(func() {
		log.Printf("durable storage unavailable, keeping progress in memory: %v", err)
	})
}
