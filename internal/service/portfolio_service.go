package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/position"
	"github.com/dmelo/patrimonio-backend/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations. It
// owns the persisted allocations and derives positions from them against the
// latest quotes; positions themselves are never stored.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	quoteService  *QuoteService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	quoteService *QuoteService,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		quoteService:  quoteService,
	}
}

// GetPortfolios retrieves all portfolios.
func (s *PortfolioService) GetPortfolios() ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios()
}

// GetPortfolio retrieves a single portfolio by its ID.
func (s *PortfolioService) GetPortfolio(id string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(id)
}

// CreatePortfolio registers a new portfolio.
func (s *PortfolioService) CreatePortfolio(req request.CreatePortfolioRequest) (*model.Portfolio, error) {
	portfolio := &model.Portfolio{
		ID:               uuid.New().String(),
		Name:             req.Name,
		Currency:         model.Currency(req.Currency),
		ClassificationID: req.ClassificationID,
	}

	if err := s.portfolioRepo.Create(*portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return portfolio, nil
}

// UpdatePortfolio applies the fields present on the request to an existing portfolio.
func (s *PortfolioService) UpdatePortfolio(id string, req request.UpdatePortfolioRequest) (*model.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Currency != nil {
		portfolio.Currency = model.Currency(*req.Currency)
	}
	if req.ClassificationID != nil {
		portfolio.ClassificationID = *req.ClassificationID
	}

	if err := s.portfolioRepo.Update(portfolio); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}

	return &portfolio, nil
}

// DeletePortfolio removes a portfolio and its allocations.
func (s *PortfolioService) DeletePortfolio(id string) error {
	return s.portfolioRepo.Delete(id)
}

// GetAllocations retrieves a portfolio's allocations keyed by ticker.
func (s *PortfolioService) GetAllocations(portfolioID string) (map[string]model.AllocationRecord, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return nil, err
	}
	return s.portfolioRepo.GetAllocations(portfolioID)
}

// UpsertAllocation creates or adjusts one allocation. Quantity on the request
// is the new total held. When the quantity changes on an existing allocation,
// the cost basis absorbs the delta at the current quote, so the derived
// average price becomes a weighted average of old and new lots.
func (s *PortfolioService) UpsertAllocation(portfolioID string, req request.UpsertAllocationRequest) (*model.AllocationRecord, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return nil, err
	}

	allocation, err := s.portfolioRepo.GetAllocationOnTicker(portfolioID, req.Ticker)
	if err == nil {
		delta := req.Quantity - allocation.Quantity
		if delta != 0 {
			quote, err := s.quoteService.GetQuote(req.Ticker)
			if err != nil {
				return nil, err
			}
			allocation.InitialValue += delta * quote.Price
			allocation.Quantity = req.Quantity
		}
		allocation.PercPlanned = req.PercPlanned

		if err := s.portfolioRepo.UpsertAllocation(allocation); err != nil {
			return nil, fmt.Errorf("failed to update allocation: %w", err)
		}
		return &allocation, nil
	}

	// First lot of this ticker: cost basis is quantity at the current quote.
	initialValue := 0.0
	if req.Quantity != 0 {
		quote, err := s.quoteService.GetQuote(req.Ticker)
		if err != nil {
			return nil, err
		}
		initialValue = req.Quantity * quote.Price
	}

	allocation = model.AllocationRecord{
		ID:           uuid.New().String(),
		PortfolioID:  portfolioID,
		Ticker:       req.Ticker,
		Quantity:     req.Quantity,
		InitialValue: initialValue,
		PercPlanned:  req.PercPlanned,
	}

	if err := s.portfolioRepo.UpsertAllocation(allocation); err != nil {
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}
	return &allocation, nil
}

// DeleteAllocation removes one ticker from a portfolio.
func (s *PortfolioService) DeleteAllocation(portfolioID, ticker string) error {
	return s.portfolioRepo.DeleteAllocation(portfolioID, ticker)
}

// GetPosition derives the current position of a portfolio from its
// allocations and the latest quotes. The result includes the synthetic
// "total" entry; NaN and Infinity pass through untouched.
func (s *PortfolioService) GetPosition(portfolioID string) (map[string]position.AllocationQuoted, error) {
	allocations, err := s.GetAllocations(portfolioID)
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(allocations))
	for ticker := range allocations {
		tickers = append(tickers, ticker)
	}

	quotes, err := s.quoteService.GetQuotes(tickers)
	if err != nil {
		return nil, err
	}

	return position.Calculate(quotes, allocations), nil
}

// MarketValueByClassification sums today's market value of every portfolio
// into its classification, keeping one subtotal per currency so the caller
// can convert each before aggregating. Portfolios without a classification
// are skipped. Feeds the live projection of the profitability table.
func (s *PortfolioService) MarketValueByClassification() (map[string][]model.CurrencyAmount, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios()
	if err != nil {
		return nil, err
	}

	values := make(map[string][]model.CurrencyAmount)
	for _, portfolio := range portfolios {
		if portfolio.ClassificationID == "" {
			continue
		}

		pos, err := s.GetPosition(portfolio.ID)
		if err != nil {
			return nil, err
		}

		total := pos[position.TotalKey]
		values[portfolio.ClassificationID] = addToSubtotal(
			values[portfolio.ClassificationID], total.MarketValue, portfolio.Currency)
	}

	return values, nil
}

// addToSubtotal merges a value into the subtotal of its currency. Amounts in
// different currencies stay separate; summing them raw would be meaningless.
func addToSubtotal(subtotals []model.CurrencyAmount, value float64, currency model.Currency) []model.CurrencyAmount {
	for i := range subtotals {
		if subtotals[i].Currency == currency {
			subtotals[i].Value += value
			return subtotals
		}
	}
	return append(subtotals, model.CurrencyAmount{Value: value, Currency: currency})
}
