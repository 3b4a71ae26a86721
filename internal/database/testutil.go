package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

// postgresURL returns TEST_DATABASE_URL or skips the test.
func postgresURL(t *testing.T) string {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres test")
	}
	return url
}

// TestSQLite returns a migrated SQLite database in a temporary directory.
func TestSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open test sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}
