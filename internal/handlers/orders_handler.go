package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	internalaws "github.com/smartorder/ordersync/internal/aws"
	"github.com/smartorder/ordersync/internal/catalog"
	"github.com/smartorder/ordersync/internal/inventory"
	"github.com/smartorder/ordersync/internal/orders"
	"github.com/smartorder/ordersync/internal/validation"
)

// Catalog resolves customers and products and serves the listing reads.
// Satisfied by *catalog.Store.
type Catalog interface {
	FindCustomer(ctx context.Context, customerID int64) (*catalog.Customer, error)
	FindProduct(ctx context.Context, productID int64) (*catalog.Product, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	ListOrders(ctx context.Context) ([]catalog.OrderSummary, error)
	InvalidateProducts(ctx context.Context)
}

// OrderProcessor runs the placement transaction. Satisfied by
// *orders.Workflow.
type OrderProcessor interface {
	ProcessOrder(ctx context.Context, customer catalog.Customer, product *catalog.Product, quantity int) (*orders.OrderResult, error)
}

// HandlerConfig groups dependencies for the order routes. Publisher and
// Metrics may be nil; both are post-commit best-effort concerns.
type HandlerConfig struct {
	Catalog   Catalog
	Workflow  OrderProcessor
	Publisher *internalaws.Publisher
	Metrics   *internalaws.Metrics
	Logger    *zap.Logger
}

// RegisterOrdersRoutes registers the order API routes.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.GET("/api/products", func(c *gin.Context) {
		products, err := cfg.Catalog.ListProducts(c.Request.Context())
		if err != nil {
			cfg.Logger.Error("list products failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
			return
		}
		c.JSON(http.StatusOK, products)
	})

	r.GET("/api/orders", func(c *gin.Context) {
		summaries, err := cfg.Catalog.ListOrders(c.Request.Context())
		if err != nil {
			cfg.Logger.Error("list orders failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
			return
		}
		c.JSON(http.StatusOK, summaries)
	})

	r.POST("/api/place_order", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.PlaceOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote the 400
			return
		}

		customer, err := cfg.Catalog.FindCustomer(ctx, req.CustomerID)
		if err != nil {
			cfg.Logger.Error("customer lookup failed", zap.Int64("customer_id", req.CustomerID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Order processing failed"})
			return
		}
		if customer == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}

		product, err := cfg.Catalog.FindProduct(ctx, req.ProductID)
		if err != nil {
			cfg.Logger.Error("product lookup failed", zap.Int64("product_id", req.ProductID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Order processing failed"})
			return
		}
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		result, err := cfg.Workflow.ProcessOrder(ctx, *customer, product, req.Quantity)
		if err != nil {
			var insufficient *inventory.InsufficientStockError
			var invalid *orders.ValidationError
			switch {
			case errors.As(err, &insufficient):
				if cfg.Metrics != nil {
					cfg.Metrics.Count(ctx, internalaws.MetricInsufficientStock)
				}
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.As(err, &invalid):
				c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Message})
			default:
				// persistence failure; the cause stays in the logs
				cfg.Logger.Error("order processing failed",
					zap.Int64("customer_id", req.CustomerID),
					zap.Int64("product_id", req.ProductID),
					zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Order processing failed"})
			}
			return
		}

		cfg.Catalog.InvalidateProducts(ctx)

		if cfg.Metrics != nil {
			cfg.Metrics.Count(ctx, internalaws.MetricOrdersPlaced)
		}

		if cfg.Publisher != nil {
			corrID := c.GetHeader("X-Request-Id")
			if corrID == "" {
				corrID = uuid.NewString()
			}
			msg := internalaws.OrderPlacedMessage{
				OrderID:       result.OrderID,
				CustomerID:    result.CustomerID,
				ProductID:     result.ProductID,
				TotalPrice:    result.TotalPrice.String(),
				CorrelationID: corrID,
			}
			if err := cfg.Publisher.PublishOrderPlaced(ctx, msg); err != nil {
				// the order is committed; payment capture will lag until
				// the event is replayed or reconciled
				cfg.Logger.Error("order-placed publish failed",
					zap.Int64("order_id", result.OrderID), zap.Error(err))
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":     "Order placed successfully",
			"order_id":    result.OrderID,
			"customer_id": result.CustomerID,
			"product_id":  result.ProductID,
			"quantity":    result.Quantity,
			"total_price": result.TotalPrice,
			"status":      result.Status,
		})
	})
}
