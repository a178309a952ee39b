// Package storage defines the record store boundary: whole collections of
// JSON records that are listed, appended to, or replaced in full.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collections used by the application.
const (
	Users   = "users"
	Entries = "entries"
	Goals   = "goals"
)

// ErrUnknownCollection indicates a collection name outside the known set.
var ErrUnknownCollection = errors.New("unknown collection")

// RecordStore captures the persistence operations services need. There is
// no locking across calls: a List followed by ReplaceAll is last writer wins.
type RecordStore interface {
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
	InsertAppend(ctx context.Context, collection string, record json.RawMessage) error
	ReplaceAll(ctx context.Context, collection string, records []json.RawMessage) error
	Close() error
}

// CheckCollection rejects names that are not application collections.
func CheckCollection(name string) error {
	switch name {
	case Users, Entries, Goals:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
}

// Collection is a typed view over one collection of a RecordStore.
type Collection[T any] struct {
	store RecordStore
	name  string
}

// NewCollection binds name in store to records of type T.
func NewCollection[T any](store RecordStore, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

// All loads and decodes every record in insertion order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	raws, err := c.store.List(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode %s record %d: %w", c.name, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Append encodes rec and appends it to the collection.
func (c *Collection[T]) Append(ctx context.Context, rec T) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", c.name, err)
	}
	if err := c.store.InsertAppend(ctx, c.name, raw); err != nil {
		return fmt.Errorf("append %s: %w", c.name, err)
	}
	return nil
}

// Replace writes recs as the full content of the collection.
func (c *Collection[T]) Replace(ctx context.Context, recs []T) error {
	raws := make([]json.RawMessage, 0, len(recs))
	for _, rec := range recs {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode %s record: %w", c.name, err)
		}
		raws = append(raws, raw)
	}
	if err := c.store.ReplaceAll(ctx, c.name, raws); err != nil {
		return fmt.Errorf("replace %s: %w", c.name, err)
	}
	return nil
}

// DecodeArray splits a JSON array document into its records. Empty input
// is an empty collection.
func DecodeArray(data []byte) ([]json.RawMessage, error) {
	if len(data) == 0 {
		return []json.RawMessage{}, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	if raws == nil {
		raws = []json.RawMessage{}
	}
	return raws, nil
}

// EncodeArray joins records into one JSON array document.
func EncodeArray(records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	return json.Marshal(records)
}
