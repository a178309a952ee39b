package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/budget-be/internal/storage"
	"github.com/hongminglow/budget-be/internal/storage/storetest"
)

// TestStoreIntegration runs the shared store behaviour against a live database.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_PG_INTEGRATION") != "true" {
		t.Skip("set RUN_PG_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	storetest.Run(t, func(t *testing.T) storage.RecordStore {
		ctx := context.Background()
		s, err := NewRecordStore(ctx, dbURL)
		require.NoError(t, err, "init store")
		_, err = s.pool.Exec(ctx, `TRUNCATE collections;`)
		require.NoError(t, err, "reset collections")
		return s
	})
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
