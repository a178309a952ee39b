// Package backend opens the record store named by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/hongminglow/budget-be/internal/config"
	"github.com/hongminglow/budget-be/internal/storage"
	"github.com/hongminglow/budget-be/internal/storage/jsonfile"
	"github.com/hongminglow/budget-be/internal/storage/memory"
	"github.com/hongminglow/budget-be/internal/storage/postgres"
	"github.com/hongminglow/budget-be/internal/storage/sqlite"
)

// Open returns the store selected by cfg.Storage. The caller owns Close.
func Open(ctx context.Context, cfg config.Config) (storage.RecordStore, error) {
	switch cfg.Storage {
	case config.BackendFile:
		return jsonfile.New(cfg.DataDir)
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendSQLite:
		return sqlite.New(cfg.SQLitePath)
	case config.BackendPostgres:
		return postgres.NewRecordStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
