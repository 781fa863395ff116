package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/application/service"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/config"
	domainRepo "github.com/thesujaljaiswal/maitripos-gateway/internal/domain/repository"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/handler"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/middleware"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Storefront *handler.StorefrontHandler
	Builder    *handler.BuilderHandler
	Order      *handler.OrderHandler
	Printer    *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	TokenManager      *utils.SessionTokenManager
	StorefrontService *service.StorefrontService
	Cfg               *config.Config
	IdempotencyRepo   domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Per-store rate limiter, keyed off whichever middleware resolved the store
	rateLimiter := middleware.NewStoreRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Host-resolved routes: the store comes from the request subdomain
		tenant := v1.Group("")
		tenant.Use(middleware.TenantMiddleware(deps.StorefrontService))
		tenant.Use(rateLimiter.Middleware())
		{
			tenant.GET("/storefront", h.Storefront.Get)
			tenant.POST("/sessions", h.Builder.Open)
			tenant.GET("/orders", h.Order.List)
			tenant.GET("/orders/:id", h.Order.Get)
			tenant.GET("/printer/status", h.Printer.GetStatus)
			tenant.POST("/printer/test", h.Printer.TestPrint)
		}

		// Session routes: authenticated by the session token
		registerSessionRoutes(v1, h, deps, rateLimiter)
	}

	return router
}

func registerSessionRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps, rateLimiter *middleware.StoreRateLimiter) {
	sessions := v1.Group("/sessions/:id")
	sessions.Use(middleware.SessionAuthMiddleware(deps.TokenManager))
	sessions.Use(rateLimiter.Middleware())
	{
		sessions.GET("", h.Builder.Get)
		sessions.DELETE("", h.Builder.Close)
		sessions.GET("/catalog", h.Builder.GetCatalog)
		sessions.POST("/catalog/refresh", h.Builder.RefreshCatalog)
		sessions.POST("/items", h.Builder.AddItem)
		sessions.PUT("/lines/:index/variant", h.Builder.SelectVariant)
		sessions.PUT("/lines/:index/quantity", h.Builder.ChangeQuantity)
		sessions.DELETE("/lines/:index", h.Builder.RemoveLine)
		sessions.PUT("/draft", h.Builder.UpdateDraft)

		// Order submission uses idempotency middleware to prevent duplicates
		sessions.POST("/submit", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Builder.Submit)
	}
}
