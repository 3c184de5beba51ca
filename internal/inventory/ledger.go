// Package inventory owns the stock invariant: a product's stock never goes
// negative, and the ledger is the only writer of the stock column.
package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/smartorder/ordersync/internal/catalog"
)

// Execer is the single statement the ledger needs from the caller's
// transaction. Satisfied by database.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// InsufficientStockError rejects a debit that would drive stock negative.
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product ID %d", e.ProductID)
}

// Ledger performs stock debits inside a caller-owned transaction.
type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Debit computes product.Stock - quantity and persists it within tx. If the
// result would be negative it returns *InsufficientStockError and performs
// no write. The returned new stock is not written back to the snapshot; the
// caller decides what to do with it.
//
// The debit is computed from the snapshot read before the transaction; there
// is no row lock or version check, so correctness under concurrent debits of
// the same product depends on the deployment's transaction isolation level.
func (l *Ledger) Debit(ctx context.Context, tx Execer, product catalog.Product, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("debit quantity must be positive, got %d", quantity)
	}

	newStock := product.Stock - quantity
	if newStock < 0 {
		return 0, &InsufficientStockError{ProductID: product.ProductID}
	}

	_, err := tx.Exec(ctx,
		`UPDATE products SET stock = $1 WHERE product_id = $2`,
		newStock, product.ProductID,
	)
	if err != nil {
		return 0, fmt.Errorf("update stock: %w", err)
	}
	return newStock, nil
}
