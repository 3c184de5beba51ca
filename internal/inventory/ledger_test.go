package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/smartorder/ordersync/internal/catalog"
)

type execCall struct {
	sql  string
	args []any
}

type fakeExecer struct {
	calls []execCall
	err   error
}

func (f *fakeExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func widget(stock int) catalog.Product {
	return catalog.Product{
		ProductID: 1,
		Name:      "Widget",
		Category:  "Tools",
		Price:     decimal.RequireFromString("19.99"),
		Stock:     stock,
	}
}

func TestDebit(t *testing.T) {
	tx := &fakeExecer{}
	l := NewLedger()

	newStock, err := l.Debit(context.Background(), tx, widget(5), 3)
	if err != nil {
		t.Fatalf("Debit error: %v", err)
	}
	if newStock != 2 {
		t.Fatalf("expected new stock 2, got %d", newStock)
	}
	if len(tx.calls) != 1 {
		t.Fatalf("expected 1 exec, got %d", len(tx.calls))
	}
	args := tx.calls[0].args
	if args[0].(int) != 2 || args[1].(int64) != 1 {
		t.Fatalf("unexpected update args: %+v", args)
	}
}

func TestDebit_AllRemainingStock(t *testing.T) {
	tx := &fakeExecer{}
	l := NewLedger()

	newStock, err := l.Debit(context.Background(), tx, widget(5), 5)
	if err != nil {
		t.Fatalf("expected success debiting to zero, got %v", err)
	}
	if newStock != 0 {
		t.Fatalf("expected new stock 0, got %d", newStock)
	}
}

func TestDebit_Insufficient(t *testing.T) {
	tx := &fakeExecer{}
	l := NewLedger()

	_, err := l.Debit(context.Background(), tx, widget(5), 6)

	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.ProductID != 1 {
		t.Fatalf("expected product id 1, got %d", insufficient.ProductID)
	}
	if len(tx.calls) != 0 {
		t.Fatalf("rejected debit must not write, got %d execs", len(tx.calls))
	}
}

func TestDebit_NonPositiveQuantity(t *testing.T) {
	tx := &fakeExecer{}
	l := NewLedger()

	for _, quantity := range []int{0, -1} {
		if _, err := l.Debit(context.Background(), tx, widget(5), quantity); err == nil {
			t.Fatalf("expected error for quantity %d", quantity)
		}
	}
	if len(tx.calls) != 0 {
		t.Fatalf("invalid debit must not write, got %d execs", len(tx.calls))
	}
}

func TestDebit_ExecFailure(t *testing.T) {
	tx := &fakeExecer{err: errors.New("connection reset")}
	l := NewLedger()

	_, err := l.Debit(context.Background(), tx, widget(5), 1)
	if err == nil {
		t.Fatal("expected error from failed exec")
	}
	var insufficient *InsufficientStockError
	if errors.As(err, &insufficient) {
		t.Fatal("infrastructure failure must not look like insufficient stock")
	}
}
