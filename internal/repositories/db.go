package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx every repository needs. It is satisfied by
// *pgxpool.Pool, pgx.Tx, and pgxmock, so the same repository runs against
// the pool, inside a transaction, or under test.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB adds transaction support on top of Querier; services hold this.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
