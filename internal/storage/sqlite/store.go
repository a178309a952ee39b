// Package sqlite keeps each collection as one JSON array row in a SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hongminglow/budget-be/internal/storage"
)

var _ storage.RecordStore = (*Store)(nil)

// Store is a SQLite-backed RecordStore.
type Store struct {
	db *sql.DB
}

// New opens dbPath, applies migrations and returns the store.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// List returns the records of collection in insertion order.
func (s *Store) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := storage.CheckCollection(collection); err != nil {
		return nil, err
	}
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT records FROM collections WHERE name = ?`, collection).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", collection, err)
	}
	raws, err := storage.DecodeArray([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return raws, nil
}

// InsertAppend appends record inside SQLite with json_insert.
func (s *Store) InsertAppend(ctx context.Context, collection string, record json.RawMessage) error {
	if err := storage.CheckCollection(collection); err != nil {
		return err
	}
	const query = `
		INSERT INTO collections (name, records, updated_at)
		VALUES (?, json_array(json(?)), ?)
		ON CONFLICT (name) DO UPDATE
		SET records = json_insert(collections.records, '$[#]', json(?)),
		    updated_at = excluded.updated_at`
	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, query, collection, string(record), now, string(record)); err != nil {
		return fmt.Errorf("append %s: %w", collection, err)
	}
	return nil
}

// ReplaceAll overwrites the collection row.
func (s *Store) ReplaceAll(ctx context.Context, collection string, records []json.RawMessage) error {
	if err := storage.CheckCollection(collection); err != nil {
		return err
	}
	doc, err := storage.EncodeArray(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	const query = `
		INSERT INTO collections (name, records, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE
		SET records = excluded.records,
		    updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, collection, string(doc), time.Now().UTC()); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}
