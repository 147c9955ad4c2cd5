package service_test

import (
	"errors"
	"math"
	"testing"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/position"
	"github.com/dmelo/patrimonio-backend/internal/testutil"
)

func TestPortfolioService_UpsertAllocation(t *testing.T) {
	t.Run("first lot takes its cost basis from the current quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ps := testutil.NewTestPortfolioService(t, db, &testutil.StaticQuoteProvider{})

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.InsertQuote(t, db, model.Quote{Symbol: "VOO", Price: 500, Currency: model.USD})

		allocation, err := ps.UpsertAllocation(portfolio.ID, request.UpsertAllocationRequest{
			Ticker:      "VOO",
			Quantity:    10,
			PercPlanned: 0.4,
		})
		if err != nil {
			t.Fatalf("UpsertAllocation failed: %v", err)
		}

		if allocation.InitialValue != 5000 {
			t.Errorf("Expected initial value 5000, got %v", allocation.InitialValue)
		}
		if allocation.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %v", allocation.Quantity)
		}
		if allocation.PercPlanned != 0.4 {
			t.Errorf("Expected planned percentage 0.4, got %v", allocation.PercPlanned)
		}
	})

	t.Run("zero quantity first lot needs no quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ps := testutil.NewTestPortfolioService(t, db, &testutil.StaticQuoteProvider{})

		portfolio := testutil.NewPortfolio().Build(t, db)

		allocation, err := ps.UpsertAllocation(portfolio.ID, request.UpsertAllocationRequest{
			Ticker:      "PLACEHOLDER",
			Quantity:    0,
			PercPlanned: 0.1,
		})
		if err != nil {
			t.Fatalf("UpsertAllocation failed: %v", err)
		}
		if allocation.InitialValue != 0 {
			t.Errorf("Expected initial value 0, got %v", allocation.InitialValue)
		}
	})

	t.Run("quantity increase adds the delta at the current quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ps := testutil.NewTestPortfolioService(t, db, &testutil.StaticQuoteProvider{})

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewAllocation(portfolio.ID, "VOO").WithQuantity(10).WithInitialValue(5000).Build(t, db)
		testutil.InsertQuote(t, db, model.Quote{Symbol: "VOO", Price: 520, Currency: model.USD})

		allocation, err := ps.UpsertAllocation(portfolio.ID, request.UpsertAllocationRequest{
			Ticker:      "VOO",
			Quantity:    15,
			PercPlanned: 0.4,
		})
		if err != nil {
			t.Fatalf("UpsertAllocation failed: %v", err)
		}

		if allocation.Quantity != 15 {
			t.Errorf("Expected quantity 15, got %v", allocation.Quantity)
		}
		// 5000 + 5 * 520
		if allocation.InitialValue != 7600 {
			t.Errorf("Expected initial value 7600, got %v", allocation.InitialValue)
		}
	})

	t.Run("unchanged quantity only rewrites the planned percentage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ps := testutil.NewTestPortfolioService(t, db, &testutil.StaticQuoteProvider{})

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewAllocation(portfolio.ID, "VOO").
			WithQuantity(10).
			WithInitialValue(5000).
			WithPercPlanned(0.3).
			Build(t, db)

		// No quote stored: an unchanged quantity must not fetch one.
		allocation, err := ps.UpsertAllocation(portfolio.ID, request.UpsertAllocationRequest{
			Ticker:      "VOO",
			Quantity:    10,
			PercPlanned: 0.5,
		})
		if err != nil {
			t.Fatalf("UpsertAllocation failed: %v", err)
		}

		if allocation.InitialValue != 5000 {
			t.Errorf("Expected initial value to stay 5000, got %v", allocation.InitialValue)
		}
		if allocation.PercPlanned != 0.5 {
			t.Errorf("Expected planned percentage 0.5, got %v", allocation.PercPlanned)
		}
	})

	t.Run("returns ErrPortfolioNotFound for unknown portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ps := testutil.NewTestPortfolioService(t, db, &testutil.StaticQuoteProvider{})

		_, err := ps.UpsertAllocation(testutil.MakeID(), request.UpsertAllocationRequest{Ticker: "VOO"})
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})
}

func TestPortfolioService_GetPosition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ps := testutil.NewTestPortfolioService(t, db, &testutil.StaticQuoteProvider{})

	portfolio := testutil.NewPortfolio().Build(t, db)
	testutil.NewAllocation(portfolio.ID, "VOO").WithQuantity(10).WithInitialValue(5000).Build(t, db)
	testutil.NewAllocation(portfolio.ID, "PETR4.SA").WithQuantity(100).WithInitialValue(3500).Build(t, db)
	testutil.InsertQuote(t, db, model.Quote{Symbol: "VOO", Price: 520, Currency: model.USD})
	testutil.InsertQuote(t, db, model.Quote{Symbol: "PETR4.SA", Price: 38, Currency: model.BRL})

	pos, err := ps.GetPosition(portfolio.ID)
	if err != nil {
		t.Fatalf("GetPosition failed: %v", err)
	}

	if len(pos) != 3 {
		t.Fatalf("Expected 2 tickers plus total, got %d entries", len(pos))
	}

	voo := pos["VOO"]
	if voo.MarketValue != 5200 {
		t.Errorf("Expected VOO market value 5200, got %v", voo.MarketValue)
	}
	if voo.Trend != position.TrendUp {
		t.Errorf("Expected VOO trend up, got %q", voo.Trend)
	}

	total := pos[position.TotalKey]
	if total.MarketValue != 9000 {
		t.Errorf("Expected total market value 9000, got %v", total.MarketValue)
	}
	if total.InitialValue != 8500 {
		t.Errorf("Expected total initial value 8500, got %v", total.InitialValue)
	}
	if !math.IsNaN(total.Quantity) {
		t.Errorf("Expected total quantity to be NaN, got %v", total.Quantity)
	}
}

func TestPortfolioService_MarketValueByClassification(t *testing.T) {
	t.Run("sums classified portfolios and skips unclassified ones", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ps := testutil.NewTestPortfolioService(t, db, &testutil.StaticQuoteProvider{})

		stocks := testutil.NewClassification().WithName("Ações").Build(t, db)

		classified := testutil.NewPortfolio().WithClassification(stocks.ID).Build(t, db)
		testutil.NewAllocation(classified.ID, "PETR4.SA").WithQuantity(100).WithInitialValue(3500).Build(t, db)
		testutil.InsertQuote(t, db, model.Quote{Symbol: "PETR4.SA", Price: 38, Currency: model.BRL})

		// A portfolio without a classification contributes nothing.
		unclassified := testutil.NewPortfolio().Build(t, db)
		testutil.NewAllocation(unclassified.ID, "VOO").WithQuantity(10).WithInitialValue(5000).Build(t, db)
		testutil.InsertQuote(t, db, model.Quote{Symbol: "VOO", Price: 520, Currency: model.USD})

		values, err := ps.MarketValueByClassification()
		if err != nil {
			t.Fatalf("MarketValueByClassification failed: %v", err)
		}

		if len(values) != 1 {
			t.Fatalf("Expected 1 classification, got %d", len(values))
		}
		subtotals := values[stocks.ID]
		if len(subtotals) != 1 {
			t.Fatalf("Expected 1 subtotal, got %d", len(subtotals))
		}
		if subtotals[0].Value != 3800 || subtotals[0].Currency != model.BRL {
			t.Errorf("Expected 3800 BRL, got %v %s", subtotals[0].Value, subtotals[0].Currency)
		}
	})

	t.Run("keeps per-currency subtotals apart within a classification", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ps := testutil.NewTestPortfolioService(t, db, &testutil.StaticQuoteProvider{})

		international := testutil.NewClassification().WithName("Exterior").Build(t, db)

		domestic := testutil.NewPortfolio().WithClassification(international.ID).Build(t, db)
		testutil.NewAllocation(domestic.ID, "IVVB11.SA").WithQuantity(1).WithInitialValue(90).Build(t, db)
		testutil.InsertQuote(t, db, model.Quote{Symbol: "IVVB11.SA", Price: 100, Currency: model.BRL})

		foreign := testutil.NewPortfolio().WithClassification(international.ID).WithCurrency(model.USD).Build(t, db)
		testutil.NewAllocation(foreign.ID, "VOO").WithQuantity(2).WithInitialValue(900).Build(t, db)
		testutil.InsertQuote(t, db, model.Quote{Symbol: "VOO", Price: 500, Currency: model.USD})

		values, err := ps.MarketValueByClassification()
		if err != nil {
			t.Fatalf("MarketValueByClassification failed: %v", err)
		}

		subtotals := values[international.ID]
		if len(subtotals) != 2 {
			t.Fatalf("Expected 2 currency subtotals, got %d: %v", len(subtotals), subtotals)
		}
		byCurrency := make(map[model.Currency]float64, len(subtotals))
		for _, amount := range subtotals {
			byCurrency[amount.Currency] = amount.Value
		}
		if byCurrency[model.BRL] != 100 {
			t.Errorf("Expected BRL subtotal 100, got %v", byCurrency[model.BRL])
		}
		if byCurrency[model.USD] != 1000 {
			t.Errorf("Expected USD subtotal 1000, got %v", byCurrency[model.USD])
		}
	})
}
