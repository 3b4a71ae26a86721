package database

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// shared is the migrated pool every postgres test borrows.
var shared struct {
	once sync.Once
	pool *pgxpool.Pool
	err  error
}

// TestPool returns the shared, migrated pool for TEST_DATABASE_URL.
func TestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := postgresURL(t)
	shared.once.Do(func() {
		ctx := context.Background()
		if shared.pool, shared.err = Connect(ctx, url); shared.err == nil {
			shared.err = RunMigrations(ctx, shared.pool)
		}
	})
	if shared.err != nil {
		t.Fatalf("prepare postgres test database: %v", shared.err)
	}

	return shared.pool
}

// TestTx begins a transaction on the shared pool and rolls it back when the
// test ends, so the kv_entries rows a test writes never leak into the next one.
//
//	kv := repository.NewPostgresKV(database.TestTx(t))
func TestTx(t *testing.T) PGXDB {
	t.Helper()

	tx, err := TestPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin test transaction: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return tx
}
