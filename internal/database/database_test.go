package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("fails with invalid connection string", func(t *testing.T) {
		ctx := context.Background()
		pool, err := Connect(ctx, "invalid://connection")
		require.Error(t, err)
		require.Nil(t, pool)
	})

	t.Run("fails with unreachable host", func(t *testing.T) {
		ctx := context.Background()
		pool, err := Connect(ctx, "postgres://localhost:59999/nonexistent?connect_timeout=1")
		require.Error(t, err)
		require.Nil(t, pool)
	})
}

func TestOpenSQLite(t *testing.T) {
	t.Run("creates the database file and its directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "ledger.db")

		db, err := OpenSQLite(context.Background(), path)
		require.NoError(t, err)
		defer db.Close()

		var count int
		err = db.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", KVTable)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("reopening keeps existing data", func(t *testing.T) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "ledger.db")

		db, err := OpenSQLite(ctx, path)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, "INSERT INTO kv_entries (key, value) VALUES (?, ?)", "currency", "USD")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db, err = OpenSQLite(ctx, path)
		require.NoError(t, err)
		defer db.Close()

		var value string
		require.NoError(t, db.Get(&value, "SELECT value FROM kv_entries WHERE key = ?", "currency"))
		require.Equal(t, "USD", value)
	})

	t.Run("supports in-memory databases", func(t *testing.T) {
		db, err := OpenSQLite(context.Background(), ":memory:")
		require.NoError(t, err)
		defer db.Close()
	})
}
