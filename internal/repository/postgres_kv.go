package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/freelance-ledger/internal/database"
)

// PostgresKV stores values in the kv_entries table of a PostgreSQL database.
type PostgresKV struct {
	db database.PGXDB
}

// NewPostgresKV creates a new PostgresKV.
func NewPostgresKV(db database.PGXDB) *PostgresKV {
	return &PostgresKV{db: db}
}

// Get implements KV.
func (r *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `
		SELECT value FROM kv_entries WHERE key = $1
	`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put implements KV.
func (r *PostgresKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}
	return nil
}
