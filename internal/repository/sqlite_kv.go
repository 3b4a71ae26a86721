package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitlab.com/yelinaung/freelance-ledger/internal/database"
)

// SQLiteKV stores values in the kv_entries table of the on-device database.
type SQLiteKV struct {
	db database.SQLDB
}

// NewSQLiteKV creates a new SQLiteKV.
func NewSQLiteKV(db database.SQLDB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Get implements KV.
func (r *SQLiteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM kv_entries WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put implements KV.
func (r *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}
	return nil
}
