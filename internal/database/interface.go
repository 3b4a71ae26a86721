package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// PGXDB is implemented by both pgxpool.Pool and pgx.Tx, so the key-value
// repository can run against a pool or inside a test transaction.
type PGXDB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SQLDB is the subset of sqlx used by the SQLite key-value repository.
// Implemented by sqlx.DB and sqlx.Tx.
type SQLDB interface {
	sqlx.ExecerContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

// Ensure types implement the interfaces at compile time.
var (
	_ PGXDB = (*pgxpool.Pool)(nil)
	_ PGXDB = (pgx.Tx)(nil)
	_ SQLDB = (*sqlx.DB)(nil)
	_ SQLDB = (*sqlx.Tx)(nil)
)
