package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx is the slice of pgx.Tx the order workflow needs. All writes issued
// through a Tx are provisional until Commit; Rollback undoes every one of
// them. Satisfied by pgx.Tx and by test fakes.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Beginner opens transaction scopes. Satisfied by *DB.
type Beginner interface {
	Begin(ctx context.Context) (Tx, error)
}

// Querier covers non-transactional reads and single-statement writes.
// Satisfied by *pgxpool.Pool and by pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
