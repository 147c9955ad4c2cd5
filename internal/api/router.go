package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmelo/patrimonio-backend/internal/api/handlers"
	custommiddleware "github.com/dmelo/patrimonio-backend/internal/api/middleware"
	"github.com/dmelo/patrimonio-backend/internal/config"
	"github.com/dmelo/patrimonio-backend/internal/profitability"
	"github.com/dmelo/patrimonio-backend/internal/service"
)

// Services bundles the service dependencies of the router.
type Services struct {
	System         *service.SystemService
	Classification *service.ClassificationService
	Asset          *service.AssetService
	Transaction    *service.TransactionService
	Scheduled      *service.ScheduledService
	Portfolio      *service.PortfolioService
	Quote          *service.QuoteService
	Exchange       *service.ExchangeService
	Profitability  *profitability.Service
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/classification", func(r chi.Router) {
			classificationHandler := handlers.NewClassificationHandler(services.Classification)
			r.Get("/", classificationHandler.Classifications)
			r.Post("/", classificationHandler.CreateClassification)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", classificationHandler.GetClassification)
				r.Delete("/", classificationHandler.DeleteClassification)
			})
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(services.Asset)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.Transactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/scheduled", func(r chi.Router) {
			scheduledHandler := handlers.NewScheduledHandler(services.Scheduled)
			r.Get("/", scheduledHandler.Scheduled)
			r.Post("/", scheduledHandler.CreateScheduled)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", scheduledHandler.GetScheduled)
				r.Get("/dates", scheduledHandler.Dates)
				r.Put("/", scheduledHandler.UpdateScheduled)
				r.Delete("/", scheduledHandler.DeleteScheduled)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/allocation", portfolioHandler.Allocations)
				r.Put("/allocation", portfolioHandler.UpsertAllocation)
				r.Delete("/allocation/{ticker}", portfolioHandler.DeleteAllocation)
				r.Get("/position", portfolioHandler.Position)
			})
		})

		r.Route("/quote", func(r chi.Router) {
			quoteHandler := handlers.NewQuoteHandler(services.Quote)
			r.Get("/", quoteHandler.Quotes)
			r.Post("/refresh", quoteHandler.Refresh)
			r.Put("/token", quoteHandler.SetProviderToken)
			r.Get("/{symbol}", quoteHandler.GetQuote)
		})

		r.Route("/exchange", func(r chi.Router) {
			exchangeHandler := handlers.NewExchangeHandler(services.Exchange)
			r.Get("/rates", exchangeHandler.Rates)
			r.Put("/rates", exchangeHandler.OverrideRate)
			r.Get("/convert", exchangeHandler.Convert)
		})

		r.Route("/profitability", func(r chi.Router) {
			profitabilityHandler := handlers.NewProfitabilityHandler(services.Profitability)
			r.Get("/{year}", profitabilityHandler.Report)
			r.Put("/{year}", profitabilityHandler.UpdateCell)
			r.Get("/{year}/summary", profitabilityHandler.Summary)
		})
	})

	return r
}
