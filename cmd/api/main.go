package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/application/service"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/config"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/infrastructure/backend"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/infrastructure/database"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/infrastructure/repository"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/handler"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/routes"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/printer"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/tenanthost"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Remote maitriPOS API client
	apiClient := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})

	// Host-to-store resolver
	resolver := tenanthost.NewResolver(cfg.Tenancy.DevRootHost)

	// Session token manager
	tokenManager := utils.NewSessionTokenManager(
		cfg.Session.TokenSecret,
		cfg.Session.TokenExpiry,
	)

	// Initialize repositories
	orderRecordRepo := repository.NewOrderRecordRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	storefrontService := service.NewStorefrontService(resolver, apiClient, apiClient)
	builderService := service.NewBuilderService(apiClient, apiClient, orderRecordRepo, thermalPrinter, cfg.Session.IdleTTL)
	orderService := service.NewOrderService(orderRecordRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Storefront: handler.NewStorefrontHandler(storefrontService),
		Builder:    handler.NewBuilderHandler(builderService, tokenManager),
		Order:      handler.NewOrderHandler(orderService),
		Printer:    handler.NewPrinterHandler(thermalPrinter, cfg.Printer.Type),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		TokenManager:      tokenManager,
		StorefrontService: storefrontService,
		Cfg:               cfg,
		IdempotencyRepo:   idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)
	log.Printf("Backend API: %s", cfg.Backend.BaseURL)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
