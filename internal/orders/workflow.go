package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/smartorder/ordersync/internal/catalog"
	"github.com/smartorder/ordersync/internal/database"
	"github.com/smartorder/ordersync/internal/inventory"
)

// StockDebiter is the ledger operation the workflow drives. Satisfied by
// *inventory.Ledger.
type StockDebiter interface {
	Debit(ctx context.Context, tx inventory.Execer, product catalog.Product, quantity int) (int, error)
}

// Workflow runs the order-placement transaction: insert order, debit stock,
// insert invoice, commit. Any failure after Begin rolls everything back; a
// failed attempt leaves the store untouched and issues exactly one rollback.
type Workflow struct {
	db      database.Beginner
	ledger  StockDebiter
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewWorkflow creates a Workflow.
func NewWorkflow(db database.Beginner, ledger StockDebiter, logger *zap.Logger) *Workflow {
	return &Workflow{
		db:      db,
		ledger:  ledger,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// ProcessOrder places one order for quantity units of product on behalf of
// customer.
//
// Failure surface: *ValidationError for bad input (rejected before any
// transaction), *inventory.InsufficientStockError when the debit would drive
// stock negative (transaction rolled back, order insert undone), and
// *PersistenceError for any storage failure.
//
// On success the product snapshot's Stock is updated to the debited value
// and the order row holds status CONFIRMED; the returned result reports
// COMPLETED, the terminal state of the synchronous workflow. The row itself
// reaches COMPLETED later, when the payment worker captures the invoice.
func (w *Workflow) ProcessOrder(ctx context.Context, customer catalog.Customer, product *catalog.Product, quantity int) (*OrderResult, error) {
	if product == nil {
		return nil, &ValidationError{Message: "product is required"}
	}
	if quantity <= 0 {
		return nil, &ValidationError{Message: "quantity must be a positive integer"}
	}

	totalPrice := product.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	orderDate := w.nowFunc()

	tx, err := w.db.Begin(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "begin transaction", Err: err}
	}

	var orderID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (customer_id, product_id, quantity, total_price, order_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING order_id`,
		customer.CustomerID, product.ProductID, quantity, totalPrice, orderDate, StatusConfirmed,
	).Scan(&orderID)
	if err != nil {
		w.rollback(ctx, tx)
		return nil, &PersistenceError{Op: "insert order", Err: err}
	}

	newStock, err := w.ledger.Debit(ctx, tx, *product, quantity)
	if err != nil {
		w.rollback(ctx, tx)
		var insufficient *inventory.InsufficientStockError
		if errors.As(err, &insufficient) {
			// business-rule rejection, not an infrastructure failure;
			// propagate distinctly so the adapter can map it to a 400
			w.logger.Info("order rejected: insufficient stock",
				zap.Int64("product_id", product.ProductID),
				zap.Int("requested", quantity),
				zap.Int("available", product.Stock))
			return nil, err
		}
		return nil, &PersistenceError{Op: "debit stock", Err: err}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO invoices (order_id, amount, payment_status, invoice_date)
		 VALUES ($1, $2, $3, $4)`,
		orderID, totalPrice, PaymentPending, orderDate,
	)
	if err != nil {
		w.rollback(ctx, tx)
		return nil, &PersistenceError{Op: "insert invoice", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		w.rollback(ctx, tx)
		return nil, &PersistenceError{Op: "commit transaction", Err: err}
	}

	product.Stock = newStock

	w.logger.Info("order placed",
		zap.Int64("order_id", orderID),
		zap.Int64("customer_id", customer.CustomerID),
		zap.Int64("product_id", product.ProductID),
		zap.Int("quantity", quantity),
		zap.String("total_price", totalPrice.String()),
		zap.Int("remaining_stock", newStock))

	return &OrderResult{
		OrderID:    orderID,
		CustomerID: customer.CustomerID,
		ProductID:  product.ProductID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		Status:     StatusCompleted,
	}, nil
}

func (w *Workflow) rollback(ctx context.Context, tx database.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		w.logger.Warn("rollback failed", zap.Error(err))
	}
}
