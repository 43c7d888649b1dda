package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ruralpay/accounts/docs"
	"github.com/ruralpay/accounts/internal/audit"
	"github.com/ruralpay/accounts/internal/bridge"
	"github.com/ruralpay/accounts/internal/config"
	"github.com/ruralpay/accounts/internal/database"
	"github.com/ruralpay/accounts/internal/handlers"
	mW "github.com/ruralpay/accounts/internal/middleware"
	"github.com/ruralpay/accounts/internal/repository"
	"github.com/ruralpay/accounts/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Bank Accounts API
// @version 1.0
// @description Accounts, transaction posting, commissions and debit card routing
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg := config.Load()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port

	// Storage
	var stores repository.Stores
	switch cfg.Storage.Driver {
	case "memory":
		log.Println("Using in-memory storage")
		stores = repository.NewMemoryStore().Stores()
	default:
		db := database.InitDatabase(ctx, cfg)
		defer db.Close()
		stores = repository.NewPostgresStores(db)
	}

	redisClient := database.InitRedis(ctx, cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Services
	auditLogger := audit.NewLogger()

	var settlement services.SettlementPublisher
	if cfg.Settlement.Enabled && redisClient != nil {
		settlement = services.NewSettlementService(redisClient, cfg.Settlement.Queue, cfg.Settlement.Currency, cfg.Settlement.BIC)
	}

	postingService := services.NewPostingService(stores, auditLogger, settlement, cfg.Posting.MaxRetries)
	cardService := services.NewCardService(stores.Cards, stores.Accounts, postingService, auditLogger)
	accountService := services.NewAccountService(stores.Accounts, auditLogger)
	commissionService := services.NewCommissionService(stores.Accounts, stores.Commissions)

	transactionHandler := handlers.NewTransactionHandler(postingService)
	accountHandler := handlers.NewAccountHandler(accountService, commissionService)
	cardHandler := handlers.NewCardHandler(cardService)

	// Validation bridge
	if cfg.Bridge.Enabled && redisClient != nil {
		validationBridge := bridge.New(redisClient, cfg.Bridge, accountService, cardService)
		go validationBridge.Run(ctx)
	}

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/transactions", transactionHandler.CreateTransaction)
		r.Get("/transactions", transactionHandler.ListTransactions)
		r.Get("/transactions/account/{accountId}", transactionHandler.ListAccountTransactions)

		r.Post("/accounts", accountHandler.CreateAccount)
		r.Get("/accounts/{accountId}", accountHandler.GetAccount)
		r.Put("/accounts/{accountId}", accountHandler.UpdateAccount)
		r.Get("/accounts/{accountId}/commissions", accountHandler.ListCommissions)

		r.Post("/cards/{cardNumber}/transactions", cardHandler.ProcessCardTransaction)
		r.Get("/cards/{cardNumber}/balance", cardHandler.GetPrimaryBalance)
		r.Post("/cards/{cardId}/transfer/{destinationCardId}", cardHandler.ProcessCardTransfer)
	})

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
