package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/api"
	"github.com/dmelo/patrimonio-backend/internal/config"
	"github.com/dmelo/patrimonio-backend/internal/database"
	"github.com/dmelo/patrimonio-backend/internal/profitability"
	"github.com/dmelo/patrimonio-backend/internal/quote"
	"github.com/dmelo/patrimonio-backend/internal/repository"
	"github.com/dmelo/patrimonio-backend/internal/secrets"
	"github.com/dmelo/patrimonio-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	classificationRepo := repository.NewClassificationRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	scheduledRepo := repository.NewScheduledRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	exchangeRepo := repository.NewExchangeRateRepository(db)
	profitabilityRepo := repository.NewProfitabilityRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// The vault is optional: without a key the provider token is stored in
	// plaintext.
	var vault *secrets.Vault
	if cfg.Quotes.TokenKey != "" {
		vault, err = secrets.NewVault(cfg.Quotes.TokenKey)
		if err != nil {
			log.Fatalf("Failed to initialize secrets vault: %v", err)
		}
	}

	// Create services
	systemService := service.NewSystemService(db)
	classificationService := service.NewClassificationService(classificationRepo)
	assetService := service.NewAssetService(assetRepo, classificationRepo)
	transactionService := service.NewTransactionService(transactionRepo, classificationRepo)
	scheduledService := service.NewScheduledService(scheduledRepo)
	quoteService := service.NewQuoteService(
		quoteRepo,
		portfolioRepo,
		settingRepo,
		quote.NewClient(),
		vault,
	).WithRateRebuild(exchangeRepo, cfg.Currency.Default)
	portfolioService := service.NewPortfolioService(portfolioRepo, quoteService)
	exchangeService := service.NewExchangeService(exchangeRepo, cfg.Currency.Default)
	profitabilityService := profitability.NewService(
		profitabilityRepo,
		classificationRepo,
		transactionRepo,
		exchangeRepo,
		portfolioService,
		cfg.Currency.Default,
	)

	// Periodic quote refresh
	if err := quoteService.StartScheduler(cfg.Quotes.RefreshSpec); err != nil {
		log.Fatalf("Failed to start quote scheduler: %v", err)
	}
	defer quoteService.StopScheduler()

	// Create router
	router := api.NewRouter(api.Services{
		System:         systemService,
		Classification: classificationService,
		Asset:          assetService,
		Transaction:    transactionService,
		Scheduled:      scheduledService,
		Portfolio:      portfolioService,
		Quote:          quoteService,
		Exchange:       exchangeService,
		Profitability:  profitabilityService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
