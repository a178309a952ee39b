// Package memory is an in-process RecordStore used by tests and the
// "memory" backend.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hongminglow/budget-be/internal/storage"
)

var _ storage.RecordStore = (*Store)(nil)

// Store keeps collections in a map. Each call is atomic on its own.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]json.RawMessage
}

// New returns an empty store.
func New() *Store {
	return &Store{collections: make(map[string][]json.RawMessage)}
}

// List returns a copy of the collection.
func (s *Store) List(_ context.Context, collection string) ([]json.RawMessage, error) {
	if err := storage.CheckCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.collections[collection]), nil
}

// InsertAppend adds one record at the end of the collection.
func (s *Store) InsertAppend(_ context.Context, collection string, record json.RawMessage) error {
	if err := storage.CheckCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], cloneRecord(record))
	return nil
}

// ReplaceAll swaps the collection for records.
func (s *Store) ReplaceAll(_ context.Context, collection string, records []json.RawMessage) error {
	if err := storage.CheckCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = cloneRecords(records)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func cloneRecords(in []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(in))
	for i, r := range in {
		out[i] = cloneRecord(r)
	}
	return out
}

func cloneRecord(r json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), r...)
}
