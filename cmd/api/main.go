package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kipsang/dukapos-api/internal/application/service"
	"github.com/kipsang/dukapos-api/internal/config"
	"github.com/kipsang/dukapos-api/internal/infrastructure/database"
	"github.com/kipsang/dukapos-api/internal/infrastructure/repository"
	"github.com/kipsang/dukapos-api/internal/presentation/http/handler"
	"github.com/kipsang/dukapos-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := newLogger(cfg)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, supplierRepo)
	adjustmentService := service.NewAdjustmentService(orderRepo)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo)
	checkoutService := service.NewCheckoutService(productRepo, customerRepo, orderRepo, paymentRepo)
	reconcileService := service.NewReconcileService(orderRepo, paymentRepo)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	supplierService := service.NewSupplierService(supplierRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Order:    handler.NewOrderHandler(orderService, adjustmentService, reconcileService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Supplier: handler.NewSupplierHandler(supplierService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info().
		Str("name", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("port", port).
		Msg("starting server")

	if err := router.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.App.Env == "production" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}
