package testutil

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/profitability"
	"github.com/dmelo/patrimonio-backend/internal/repository"
	"github.com/dmelo/patrimonio-backend/internal/service"
)

// StaticQuoteProvider is a QuoteProvider stub returning canned quotes.
// Symbols without an entry yield an error, like the real provider does for
// unknown tickers.
type StaticQuoteProvider struct {
	Quotes map[string]model.Quote
	Err    error
}

// FetchLatest implements service.QuoteProvider.
func (p *StaticQuoteProvider) FetchLatest(_ context.Context, _, symbol string) (model.Quote, error) {
	if p.Err != nil {
		return model.Quote{}, p.Err
	}
	q, ok := p.Quotes[symbol]
	if !ok {
		return model.Quote{}, errNoResults(symbol)
	}
	return q, nil
}

type errNoResults string

func (e errNoResults) Error() string {
	return "no results returned for symbol " + string(e)
}

// NewTestQuoteService creates a QuoteService backed by a static provider and
// no vault.
func NewTestQuoteService(t *testing.T, db *sql.DB, provider service.QuoteProvider) *service.QuoteService {
	t.Helper()

	return service.NewQuoteService(
		repository.NewQuoteRepository(db),
		repository.NewPortfolioRepository(db),
		repository.NewSettingRepository(db),
		provider,
		nil,
	)
}

// NewTestPortfolioService creates a PortfolioService backed by a static provider.
func NewTestPortfolioService(t *testing.T, db *sql.DB, provider service.QuoteProvider) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewPortfolioRepository(db),
		NewTestQuoteService(t, db, provider),
	)
}

// NewTestClassificationService creates a ClassificationService over the test database.
func NewTestClassificationService(t *testing.T, db *sql.DB) *service.ClassificationService {
	t.Helper()

	return service.NewClassificationService(repository.NewClassificationRepository(db))
}

// NewTestAssetService creates an AssetService over the test database.
func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	return service.NewAssetService(
		repository.NewAssetRepository(db),
		repository.NewClassificationRepository(db),
	)
}

// NewTestProfitabilityService creates a profitability service over the test
// database, normalizing to BRL and pinned to the given clock.
func NewTestProfitabilityService(t *testing.T, db *sql.DB, now func() time.Time) *profitability.Service {
	t.Helper()

	svc := profitability.NewService(
		repository.NewProfitabilityRepository(db),
		repository.NewClassificationRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewExchangeRateRepository(db),
		NewTestPortfolioService(t, db, &StaticQuoteProvider{}),
		model.BRL,
	)
	if now != nil {
		svc = svc.WithClock(now)
	}
	return svc
}

// NewTestTransactionService creates a TransactionService over the test database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewClassificationRepository(db),
	)
}

// NewTestScheduledService creates a ScheduledService over the test database.
func NewTestScheduledService(t *testing.T, db *sql.DB) *service.ScheduledService {
	t.Helper()

	return service.NewScheduledService(repository.NewScheduledRepository(db))
}

// NewTestExchangeService creates an ExchangeService normalizing to BRL.
func NewTestExchangeService(t *testing.T, db *sql.DB) *service.ExchangeService {
	t.Helper()

	return service.NewExchangeService(repository.NewExchangeRateRepository(db), model.BRL)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeName generates a unique entity name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Portfolio")
//	// Returns: "Portfolio ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Test"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeTicker generates a ticker symbol for testing.
//
// Example usage:
//
//	ticker := testutil.MakeTicker("PETR")
//	// Returns: "PETR1A2B"
func MakeTicker(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
