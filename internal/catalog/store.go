package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/smartorder/ordersync/internal/database"
)

// Store reads customers, products and the order listing. It never writes;
// stock mutation belongs to the inventory ledger.
type Store struct {
	db    database.Querier
	cache *ProductCache // optional; nil disables caching
}

// NewStore creates a catalog Store. cache may be nil.
func NewStore(db database.Querier, cache *ProductCache) *Store {
	return &Store{db: db, cache: cache}
}

// FindCustomer fetches a customer by id. Returns (nil, nil) if not found.
func (s *Store) FindCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	var c Customer
	err := s.db.QueryRow(ctx,
		`SELECT customer_id, name, email, region FROM customers WHERE customer_id = $1`,
		customerID,
	).Scan(&c.CustomerID, &c.Name, &c.Email, &c.Region)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return &c, nil
}

// FindProduct fetches a product by id. Returns (nil, nil) if not found.
func (s *Store) FindProduct(ctx context.Context, productID int64) (*Product, error) {
	var p Product
	err := s.db.QueryRow(ctx,
		`SELECT product_id, name, category, price, stock FROM products WHERE product_id = $1`,
		productID,
	).Scan(&p.ProductID, &p.Name, &p.Category, &p.Price, &p.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

// ListProducts returns every product. Reads go through the cache when one
// is configured; cache failures quietly fall back to the database.
func (s *Store) ListProducts(ctx context.Context) ([]Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.Get(ctx); ok {
			return products, nil
		}
	}

	rows, err := s.db.Query(ctx,
		`SELECT product_id, name, category, price, stock FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Category, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, products)
	}
	return products, nil
}

// InvalidateProducts drops the cached product listing. Called after any
// committed order, since stock changed.
func (s *Store) InvalidateProducts(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// ListOrders returns all orders joined with customer and product details,
// newest first.
func (s *Store) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT o.order_id, o.quantity, o.total_price, o.order_date, o.status,
		       c.customer_id, c.name, c.email,
		       p.product_id, p.name, p.category
		FROM orders o
		JOIN customers c ON o.customer_id = c.customer_id
		JOIN products p ON o.product_id = p.product_id
		ORDER BY o.order_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	summaries := []OrderSummary{}
	for rows.Next() {
		var o OrderSummary
		if err := rows.Scan(
			&o.OrderID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.Status,
			&o.CustomerID, &o.CustomerName, &o.CustomerEmail,
			&o.ProductID, &o.ProductName, &o.ProductCategory,
		); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		summaries = append(summaries, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return summaries, nil
}
