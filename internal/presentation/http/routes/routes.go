package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kipsang/dukapos-api/internal/config"
	domainRepo "github.com/kipsang/dukapos-api/internal/domain/repository"
	"github.com/kipsang/dukapos-api/internal/presentation/http/handler"
	"github.com/kipsang/dukapos-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Checkout *handler.CheckoutHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Supplier *handler.SupplierHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          zerolog.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		if deps.IdempotencyRepo != nil {
			v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		}

		registerOrderRoutes(v1, h)
		registerPaymentRoutes(v1, h)
		registerCatalogRoutes(v1, h)

		v1.POST("/checkout", h.Checkout.Checkout)
	}

	return router
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id", h.Order.Update)
		orders.POST("/:id/submit", h.Order.Submit)
		orders.POST("/:id/fulfill", h.Order.Fulfill)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/transition", h.Order.Transition)
		orders.POST("/:id/convert-to-cash", h.Order.ConvertLineToCash)
		orders.POST("/:id/revert-to-cash", h.Order.RevertLineToCash)
		orders.GET("/:id/balance", h.Order.Balance)
		orders.GET("/:id/payments", h.Order.Payments)
	}
}

func registerPaymentRoutes(v1 *gin.RouterGroup, h *Handlers) {
	payments := v1.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", h.Payment.Create)
		payments.GET("/:id", h.Payment.Get)
		payments.PATCH("/:id/status", h.Payment.UpdateStatus)
		payments.POST("/:id/deposit", h.Payment.Deposit)
		payments.DELETE("/:id", h.Payment.Delete)
	}
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PATCH("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PATCH("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	suppliers := v1.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PATCH("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}
