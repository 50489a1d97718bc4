package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/application/service"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/config"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/infrastructure/database"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/infrastructure/repository"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/presentation/http/handler"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/presentation/http/routes"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/storage"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/utils"
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

	// Seed the staff account and demo catalog
	if err := database.SeedDefaultData(db, cfg); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize upload storage
	store, err := storage.NewLocalStore(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, store)
	customerService := service.NewCustomerService(customerRepo)
	ledgerService := service.NewLedgerService(transactionRepo, customerRepo, productRepo, cfg.Shop.CostRatio)
	checkoutService := service.NewCheckoutService(productRepo, customerRepo, transactionRepo, cfg.Shop.CostRatio)
	transactionService := service.NewTransactionService(transactionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Product:     handler.NewProductHandler(productService),
		Customer:    handler.NewCustomerHandler(customerService, ledgerService),
		Checkout:    handler.NewCheckoutHandler(checkoutService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Report:      handler.NewReportHandler(ledgerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
