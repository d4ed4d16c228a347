package storage

import "sync"

// MemoryStore keeps documents in a process-lifetime map. Progress held
// here does not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

// Load returns the document stored under key, or ErrNotFound
func (m *MemoryStore) Load(key string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	data := make([]byte, len(doc.Data))
	copy(data, doc.Data)
	return &Document{Version: doc.Version, Data: data}, nil
}

// Save stores a copy of the document under key
func (m *MemoryStore) Save(key string, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data := make([]byte, len(doc.Data))
	copy(data, doc.Data)
	m.docs[key] = Document{Version: doc.Version, Data: data}
	return nil
}

// Delete removes the document stored under key
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, key)
	return nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}
