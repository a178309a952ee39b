package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/budget-be/internal/storage"
)

// Ensure Store satisfies the storage.RecordStore interface at compile time.
var _ storage.RecordStore = (*Store)(nil)

// Store provides Postgres-backed persistence, one JSONB array per collection.
type Store struct {
	pool *pgxpool.Pool
}

// NewRecordStore creates a new Store and runs migrations.
func NewRecordStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			records JSONB NOT NULL DEFAULT '[]'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`ALTER TABLE collections ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW();`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// List fetches the collection's records in insertion order.
func (s *Store) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := storage.CheckCollection(collection); err != nil {
		return nil, err
	}
	const query = `SELECT records FROM collections WHERE name = $1;`
	var doc []byte
	if err := s.pool.QueryRow(ctx, query, collection).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("select %s: %w", collection, err)
	}
	raws, err := storage.DecodeArray(doc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return raws, nil
}

// InsertAppend concatenates record onto the stored array in one statement.
func (s *Store) InsertAppend(ctx context.Context, collection string, record json.RawMessage) error {
	if err := storage.CheckCollection(collection); err != nil {
		return err
	}
	const query = `
		INSERT INTO collections (name, records)
		VALUES ($1, jsonb_build_array($2::jsonb))
		ON CONFLICT (name) DO UPDATE
		SET records = collections.records || jsonb_build_array($2::jsonb),
			updated_at = NOW();
		`
	if _, err := s.pool.Exec(ctx, query, collection, string(record)); err != nil {
		return fmt.Errorf("append %s: %w", collection, err)
	}
	return nil
}

// ReplaceAll overwrites the stored array.
func (s *Store) ReplaceAll(ctx context.Context, collection string, records []json.RawMessage) error {
	if err := storage.CheckCollection(collection); err != nil {
		return err
	}
	doc, err := storage.EncodeArray(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	const query = `
		INSERT INTO collections (name, records)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (name) DO UPDATE
		SET records = EXCLUDED.records,
			updated_at = NOW();
		`
	if _, err := s.pool.Exec(ctx, query, collection, string(doc)); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}
