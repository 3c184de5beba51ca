package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productListKey = "catalog:products"

// ProductCache caches the full product listing in redis with a short TTL.
// It is strictly best-effort: every failure degrades to a database read.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache connects to redis and verifies connectivity.
func NewProductCache(redisURL string, ttl time.Duration, logger *zap.Logger) (*ProductCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &ProductCache{client: client, ttl: ttl, logger: logger}, nil
}

func (c *ProductCache) Close() error {
	return c.client.Close()
}

// Get returns the cached listing and true on a hit.
func (c *ProductCache) Get(ctx context.Context) ([]Product, bool) {
	data, err := c.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("product cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		c.logger.Warn("product cache decode failed", zap.Error(err))
		return nil, false
	}
	return products, true
}

// Set stores the listing. Failures are logged and ignored.
func (c *ProductCache) Set(ctx context.Context, products []Product) {
	data, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("product cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, productListKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		c.logger.Warn("product cache invalidation failed", zap.Error(err))
	}
}
