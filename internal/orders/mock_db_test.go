package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/smartorder/ordersync/internal/database"
)

// fakeRow implements pgx.Row over a fixed value slice.
// NOTE: intentionally minimal; only the destination types our queries scan.
type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > len(r.values) {
		return errors.New("fakeRow: not enough values")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *decimal.Decimal:
			*p = r.values[i].(decimal.Decimal)
		default:
			return errors.New("fakeRow: unsupported destination type")
		}
	}
	return nil
}

type sqlCall struct {
	sql  string
	args []any
}

// fakeTx records every statement issued through it and can be told to fail
// on statements containing a given substring.
type fakeTx struct {
	execs     []sqlCall
	queryRows []sqlCall

	orderID   int64  // assigned id returned by the order insert
	failOn    string // substring of SQL that fails when non-empty
	commitErr error
	commits   int
	rollbacks int
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sqlCall{sql: sql, args: args})
	if t.failOn != "" && strings.Contains(sql, t.failOn) {
		return pgconn.CommandTag{}, errors.New("forced exec failure")
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	t.queryRows = append(t.queryRows, sqlCall{sql: sql, args: args})
	if t.failOn != "" && strings.Contains(sql, t.failOn) {
		return &fakeRow{err: errors.New("forced query failure")}
	}
	return &fakeRow{values: []any{t.orderID}}
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}

// fakeDB hands out one fakeTx per Begin.
type fakeDB struct {
	txs      []*fakeTx
	begins   int
	beginErr error
}

func (db *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	if db.begins >= len(db.txs) {
		return nil, errors.New("fakeDB: no transaction prepared for Begin")
	}
	tx := db.txs[db.begins]
	db.begins++
	return tx, nil
}
