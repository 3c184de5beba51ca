package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	internalaws "github.com/smartorder/ordersync/internal/aws"
	"github.com/smartorder/ordersync/internal/catalog"
	"github.com/smartorder/ordersync/internal/config"
	"github.com/smartorder/ordersync/internal/database"
	"github.com/smartorder/ordersync/internal/handlers"
	"github.com/smartorder/ordersync/internal/inventory"
	"github.com/smartorder/ordersync/internal/orders"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterOrdersRoutes(r, cfg)

	return r
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	var cache *catalog.ProductCache
	if cfg.RedisURL != "" {
		cache, err = catalog.NewProductCache(cfg.RedisURL, time.Duration(cfg.CacheTTLSeconds)*time.Second, logger)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer cache.Close()
	}

	var publisher *internalaws.Publisher
	var metrics *internalaws.Metrics
	if cfg.OrderEventsQueue != "" || cfg.MetricsNamespace != "" {
		clients, err := internalaws.NewAWSClients(ctx)
		if err != nil {
			logger.Fatal("failed to init aws clients", zap.Error(err))
		}
		if cfg.OrderEventsQueue != "" {
			publisher = internalaws.NewPublisher(clients.SQS, cfg.OrderEventsQueue)
		}
		if cfg.MetricsNamespace != "" {
			metrics = internalaws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace, logger)
		}
	}

	catalogStore := catalog.NewStore(db.Pool(), cache)
	workflow := orders.NewWorkflow(db, inventory.NewLedger(), logger)

	r := setupRouter(handlers.HandlerConfig{
		Catalog:   catalogStore,
		Workflow:  workflow,
		Publisher: publisher,
		Metrics:   metrics,
		Logger:    logger,
	})

	// RUN_LOCAL=true runs a plain HTTP server for development.
	if cfg.RunLocal {
		addr := ":" + cfg.Port
		logger.Info("running local server", zap.String("addr", addr))
		if err := r.Run(addr); err != nil {
			logger.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
