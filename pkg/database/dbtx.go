package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the querier interface repositories depend on. It is satisfied by
// *pgxpool.Pool, pgx.Tx, and pgxmock.PgxPoolIface, so the same repository
// code runs against the real pool, inside a transaction, and under test.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
