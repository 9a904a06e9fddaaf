// Package dbtest opens a migrated database for integration tests.
package dbtest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/benx421/points-exchange/internal/config"
	"github.com/benx421/points-exchange/internal/db"
)

// Open connects to the database described by the environment, applies the
// migrations and registers Close as cleanup. The test is skipped when no
// database is reachable or when running with -short.
func Open(t *testing.T) *db.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, &cfg.Database, Logger())
	if err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}

// Config loads the environment configuration used by Open
func Config(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// Logger returns a logger that discards output
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
