package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
	"github.com/dmelo/patrimonio-backend/internal/testutil"
)

func TestQuoteService_GetQuotes(t *testing.T) {
	t.Run("serves stored quotes and caches them", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		qs := testutil.NewTestQuoteService(t, db, &testutil.StaticQuoteProvider{})

		testutil.InsertQuote(t, db, model.Quote{Symbol: "VOO", Price: 512.5, Currency: model.USD})

		quotes, err := qs.GetQuotes([]string{"VOO"})
		if err != nil {
			t.Fatalf("GetQuotes failed: %v", err)
		}
		if quotes["VOO"].Price != 512.5 {
			t.Errorf("Expected price 512.5, got %v", quotes["VOO"].Price)
		}

		// The row is gone but the cache still serves the quote.
		if _, err := db.Exec(`DELETE FROM quote WHERE symbol = 'VOO'`); err != nil {
			t.Fatalf("Failed to delete quote row: %v", err)
		}

		quotes, err = qs.GetQuotes([]string{"VOO"})
		if err != nil {
			t.Fatalf("GetQuotes failed: %v", err)
		}
		if quotes["VOO"].Price != 512.5 {
			t.Errorf("Expected cached price 512.5, got %v", quotes["VOO"].Price)
		}
	})

	t.Run("omits symbols without a stored quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		qs := testutil.NewTestQuoteService(t, db, &testutil.StaticQuoteProvider{})

		quotes, err := qs.GetQuotes([]string{"UNKNOWN"})
		if err != nil {
			t.Fatalf("GetQuotes failed: %v", err)
		}
		if len(quotes) != 0 {
			t.Errorf("Expected empty result, got %d quotes", len(quotes))
		}
	})
}

func TestQuoteService_GetQuote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	qs := testutil.NewTestQuoteService(t, db, &testutil.StaticQuoteProvider{})

	_, err := qs.GetQuote("UNKNOWN")
	if !errors.Is(err, apperrors.ErrQuoteNotFound) {
		t.Errorf("Expected ErrQuoteNotFound, got %v", err)
	}
}

func TestQuoteService_RefreshAll(t *testing.T) {
	t.Run("fetches and stores a quote per allocated ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewAllocation(portfolio.ID, "VOO").Build(t, db)
		testutil.NewAllocation(portfolio.ID, "PETR4.SA").Build(t, db)

		provider := &testutil.StaticQuoteProvider{
			Quotes: map[string]model.Quote{
				"VOO":      {Symbol: "VOO", Price: 512.5, Currency: model.USD},
				"PETR4.SA": {Symbol: "PETR4.SA", Price: 38.2, Currency: model.BRL},
			},
		}
		qs := testutil.NewTestQuoteService(t, db, provider)

		if err := qs.RefreshAll(context.Background()); err != nil {
			t.Fatalf("RefreshAll failed: %v", err)
		}

		quoteRepo := repository.NewQuoteRepository(db)
		stored, err := quoteRepo.GetQuoteOnSymbol("PETR4.SA")
		if err != nil {
			t.Fatalf("GetQuoteOnSymbol after refresh failed: %v", err)
		}
		if stored.Price != 38.2 {
			t.Errorf("Expected stored price 38.2, got %v", stored.Price)
		}
	})

	t.Run("rebuilds the latest exchange rates from currency pairs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewAllocation(portfolio.ID, "VOO").Build(t, db)

		provider := &testutil.StaticQuoteProvider{
			Quotes: map[string]model.Quote{
				"VOO":      {Symbol: "VOO", Price: 512.5, Currency: model.USD},
				"USDBRL=X": {Symbol: "USDBRL=X", Price: 5.4, Currency: model.BRL},
				"EURBRL=X": {Symbol: "EURBRL=X", Price: 6.2, Currency: model.BRL},
			},
		}
		exchangeRepo := repository.NewExchangeRateRepository(db)
		qs := testutil.NewTestQuoteService(t, db, provider).WithRateRebuild(exchangeRepo, model.BRL)

		if err := qs.RefreshAll(context.Background()); err != nil {
			t.Fatalf("RefreshAll failed: %v", err)
		}

		table, err := exchangeRepo.Latest()
		if err != nil {
			t.Fatalf("Latest after refresh failed: %v", err)
		}
		if got, ok := table.Rate(model.USD, model.BRL); !ok || got != 5.4 {
			t.Errorf("Expected USD->BRL rate 5.4, got %v (known=%v)", got, ok)
		}
		if got, ok := table.Rate(model.EUR, model.BRL); !ok || got != 6.2 {
			t.Errorf("Expected EUR->BRL rate 6.2, got %v (known=%v)", got, ok)
		}
	})

	t.Run("skips unresolvable currency pairs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewAllocation(portfolio.ID, "VOO").Build(t, db)

		provider := &testutil.StaticQuoteProvider{
			Quotes: map[string]model.Quote{
				"VOO":      {Symbol: "VOO", Price: 512.5, Currency: model.USD},
				"USDBRL=X": {Symbol: "USDBRL=X", Price: 5.4, Currency: model.BRL},
			},
		}
		exchangeRepo := repository.NewExchangeRateRepository(db)
		qs := testutil.NewTestQuoteService(t, db, provider).WithRateRebuild(exchangeRepo, model.BRL)

		if err := qs.RefreshAll(context.Background()); err != nil {
			t.Fatalf("Expected the refresh to survive a missing pair, got %v", err)
		}

		table, err := exchangeRepo.Latest()
		if err != nil {
			t.Fatalf("Latest after refresh failed: %v", err)
		}
		if got, ok := table.Rate(model.USD, model.BRL); !ok || got != 5.4 {
			t.Errorf("Expected USD->BRL rate 5.4, got %v (known=%v)", got, ok)
		}
	})

	t.Run("is a no-op when nothing is allocated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := &testutil.StaticQuoteProvider{Err: errors.New("provider must not be called")}
		qs := testutil.NewTestQuoteService(t, db, provider)

		if err := qs.RefreshAll(context.Background()); err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
	})

	t.Run("wraps provider failures in ErrFailedToRefreshQuotes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewAllocation(portfolio.ID, "VOO").Build(t, db)

		provider := &testutil.StaticQuoteProvider{Err: errors.New("upstream down")}
		qs := testutil.NewTestQuoteService(t, db, provider)

		err := qs.RefreshAll(context.Background())
		if !errors.Is(err, apperrors.ErrFailedToRefreshQuotes) {
			t.Errorf("Expected ErrFailedToRefreshQuotes, got %v", err)
		}
	})
}

func TestQuoteService_SetProviderToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	qs := testutil.NewTestQuoteService(t, db, &testutil.StaticQuoteProvider{})

	if err := qs.SetProviderToken("secret-token"); err != nil {
		t.Fatalf("SetProviderToken failed: %v", err)
	}

	// Without a vault the token is stored as-is.
	settingRepo := repository.NewSettingRepository(db)
	stored, err := settingRepo.Get("quote_provider_token")
	if err != nil {
		t.Fatalf("Get setting failed: %v", err)
	}
	if stored != "secret-token" {
		t.Errorf("Expected stored token 'secret-token', got %q", stored)
	}
}
