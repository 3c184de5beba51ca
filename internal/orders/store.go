package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/smartorder/ordersync/internal/database"
)

// ErrStatusMismatch indicates a conditional status transition matched no
// row: the record is missing or its status is not the expected one.
var ErrStatusMismatch = errors.New("status mismatch/conditional failed")

// Store covers the order and invoice operations the payment worker needs.
// The placement transaction itself lives in Workflow.
type Store struct {
	db database.Querier
}

// NewStore creates an orders Store.
func NewStore(db database.Querier) *Store {
	return &Store{db: db}
}

// Get fetches an order by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, orderID int64) (*Order, error) {
	var o Order
	err := s.db.QueryRow(ctx,
		`SELECT order_id, customer_id, product_id, quantity, total_price, order_date, status
		 FROM orders WHERE order_id = $1`,
		orderID,
	).Scan(&o.OrderID, &o.CustomerID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// UpdateStatus conditionally moves an order from expectedStatus to
// newStatus. Returns ErrStatusMismatch when the order is not currently in
// expectedStatus, which is how duplicate worker deliveries are detected.
func (s *Store) UpdateStatus(ctx context.Context, orderID int64, expectedStatus, newStatus string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE order_id = $2 AND status = $3`,
		newStatus, orderID, expectedStatus,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusMismatch
	}
	return nil
}

// MarkInvoicePaid moves the order's invoice PENDING -> PAID. Returns
// ErrStatusMismatch if the invoice is missing or already paid.
func (s *Store) MarkInvoicePaid(ctx context.Context, orderID int64) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE invoices SET payment_status = $1 WHERE order_id = $2 AND payment_status = $3`,
		PaymentPaid, orderID, PaymentPending,
	)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusMismatch
	}
	return nil
}

// GetInvoice fetches the invoice for an order. Returns (nil, nil) if not
// found.
func (s *Store) GetInvoice(ctx context.Context, orderID int64) (*Invoice, error) {
	var inv Invoice
	err := s.db.QueryRow(ctx,
		`SELECT invoice_id, order_id, amount, payment_status, invoice_date
		 FROM invoices WHERE order_id = $1`,
		orderID,
	).Scan(&inv.InvoiceID, &inv.OrderID, &inv.Amount, &inv.PaymentStatus, &inv.InvoiceDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}
