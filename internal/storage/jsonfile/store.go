// Package jsonfile stores each collection as a pretty-printed JSON array in
// its own file under a data directory.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hongminglow/budget-be/internal/storage"
)

var _ storage.RecordStore = (*Store)(nil)

// Store reads and rewrites whole files. Concurrent reads of the same file
// share one disk read until the next write; writes are serialized per store.
type Store struct {
	dir     string
	reads   singleflight.Group
	writeMu sync.Mutex
}

// New returns a store rooted at dir, creating the directory when missing.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// List loads the collection. A missing, empty or unparsable file is an
// empty collection.
func (s *Store) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := storage.CheckCollection(collection); err != nil {
		return nil, err
	}
	v, err, _ := s.reads.Do(collection, func() (any, error) {
		return s.read(ctx, collection)
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]json.RawMessage)
	return append([]json.RawMessage(nil), shared...), nil
}

func (s *Store) read(ctx context.Context, collection string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.DebugContext(ctx, "collection file missing, using empty collection", "collection", collection)
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	raws, err := storage.DecodeArray(bytes.TrimSpace(data))
	if err != nil {
		slog.WarnContext(ctx, "collection file is corrupt, using empty collection",
			"collection", collection, "error", err)
		return []json.RawMessage{}, nil
	}
	return raws, nil
}

// InsertAppend rewrites the file with record added at the end.
func (s *Store) InsertAppend(ctx context.Context, collection string, record json.RawMessage) error {
	if err := storage.CheckCollection(collection); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	raws, err := s.read(ctx, collection)
	if err != nil {
		return err
	}
	return s.write(collection, append(raws, record))
}

// ReplaceAll rewrites the file with records.
func (s *Store) ReplaceAll(_ context.Context, collection string, records []json.RawMessage) error {
	if err := storage.CheckCollection(collection); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.write(collection, records)
}

// write replaces the file through a rename so readers never see a partial
// document. A read in flight from before the rename is dropped from the
// group so later List calls load the new file.
func (s *Store) write(collection string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	s.reads.Forget(collection)
	return nil
}

// Close is a no-op; files are not held open.
func (s *Store) Close() error { return nil }
