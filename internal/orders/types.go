package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. CONFIRMED is written at insert; the payment worker moves
// rows CONFIRMED -> PROCESSING -> COMPLETED.
const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Invoice payment statuses.
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

// Order is a row of the orders table. OrderID is assigned by the store on
// insert and is zero before that.
type Order struct {
	OrderID    int64           `json:"order_id"`
	CustomerID int64           `json:"customer_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OrderDate  time.Time       `json:"order_date"`
	Status     string          `json:"status"`
}

// Invoice is a row of the invoices table. Exactly one exists per persisted
// order.
type Invoice struct {
	InvoiceID     int64           `json:"invoice_id"`
	OrderID       int64           `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentStatus string          `json:"payment_status"`
	InvoiceDate   time.Time       `json:"invoice_date"`
}

// OrderResult is what ProcessOrder hands back to the API adapter.
type OrderResult struct {
	OrderID    int64           `json:"order_id"`
	CustomerID int64           `json:"customer_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
}
