package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is an immutable snapshot read from the customers table.
type Customer struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Region     string `json:"region"`
}

// Product is a working copy of a catalog row. Stock is only mutated by the
// inventory ledger inside an order transaction; everywhere else the struct
// is read-only.
type Product struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// OrderSummary is one row of the joined order listing.
type OrderSummary struct {
	OrderID         int64           `json:"order_id"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	OrderDate       time.Time       `json:"order_date"`
	Status          string          `json:"status"`
	CustomerID      int64           `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductCategory string          `json:"product_category"`
}
