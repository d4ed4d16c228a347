package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore fails every operation, standing in for a dead database
type brokenStore struct{}

func (brokenStore) Load(key string) (*Document, error)  { return nil, errors.New("db is down") }
func (brokenStore) Save(key string, doc *Document) error { return errors.New("db is down") }
func (brokenStore) Delete(key string) error              { return errors.New("db is down") }
func (brokenStore) Close() error                         { return nil }

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemoryStore()

	_, err := m.Load("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save("k", &Document{Version: 2, Data: []byte(`{"a":1}`)}))

	doc, err := m.Load("k")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, []byte(`{"a":1}`), doc.Data)

	require.NoError(t, m.Delete("k"))
	_, err = m.Load("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesData(t *testing.T) {
	m := NewMemoryStore()
	data := []byte(`{"a":1}`)
	require.NoError(t, m.Save("k", &Document{Version: 2, Data: data}))

	// Mutating the caller's slice must not reach the stored copy.
	data[0] = 'X'

	doc, err := m.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), doc.Data)

	// Same for the slice handed back by Load.
	doc.Data[0] = 'X'
	again, err := m.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), again.Data)
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := NewMemoryStore()
	f := NewFallback(primary)

	require.NoError(t, f.Save("k", &Document{Version: 2, Data: []byte("{}")}))

	doc, err := primary.Load("k")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Version)
}

func TestFallbackNotFoundPassesThrough(t *testing.T) {
	f := NewFallback(NewMemoryStore())

	_, err := f.Load("missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFallbackDegradesSilently(t *testing.T) {
	f := NewFallback(brokenStore{})

	// Callers never see the storage fault.
	require.NoError(t, f.Save("k", &Document{Version: 2, Data: []byte(`{"x":1}`)}))

	doc, err := f.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"x":1}`), doc.Data)

	require.NoError(t, f.Delete("k"))
	_, err = f.Load("k")
	assert.ErrorIs(t, err, ErrNotFound)
}
