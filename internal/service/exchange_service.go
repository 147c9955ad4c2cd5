package service

import (
	"time"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/exchange"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
)

// ExchangeService handles currency conversion and the administration of the
// persisted rate table.
type ExchangeService struct {
	exchangeRepo    *repository.ExchangeRateRepository
	defaultCurrency model.Currency
}

// NewExchangeService creates a new ExchangeService with the provided repository dependencies.
func NewExchangeService(
	exchangeRepo *repository.ExchangeRateRepository,
	defaultCurrency model.Currency,
) *ExchangeService {
	return &ExchangeService{
		exchangeRepo:    exchangeRepo,
		defaultCurrency: defaultCurrency,
	}
}

// Latest returns the current rate table.
func (s *ExchangeService) Latest() (exchange.Table, error) {
	return s.exchangeRepo.Latest()
}

// ForMonth returns the historical snapshot table for a calendar month. The
// boolean reports whether a snapshot exists.
func (s *ExchangeService) ForMonth(year, month int) (exchange.Table, bool, error) {
	return s.exchangeRepo.ForMonth(year, month)
}

// List retrieves every stored rate row.
func (s *ExchangeService) List() ([]model.ExchangeRate, error) {
	return s.exchangeRepo.List()
}

// Convert exchanges a value between currencies using the latest rates. A
// missing rate passes the value through unchanged in its original currency.
func (s *ExchangeService) Convert(value float64, from, to model.Currency) (model.CurrencyAmount, error) {
	table, err := s.exchangeRepo.Latest()
	if err != nil {
		return model.CurrencyAmount{}, err
	}
	return table.Exchange(value, from, to), nil
}

// Enhance pairs a value with its conversion to the default currency.
func (s *ExchangeService) Enhance(value float64, original model.Currency) (model.ExchangeValue, error) {
	table, err := s.exchangeRepo.Latest()
	if err != nil {
		return model.ExchangeValue{}, err
	}
	return table.Enhance(value, original, s.defaultCurrency), nil
}

// OverrideRate stores one rate row, latest or monthly snapshot depending on
// the year and month on the request.
func (s *ExchangeService) OverrideRate(req request.OverrideRateRequest) error {
	return s.exchangeRepo.Upsert(model.ExchangeRate{
		From:      model.Currency(req.From),
		To:        model.Currency(req.To),
		Year:      req.Year,
		Month:     req.Month,
		Rate:      req.Rate,
		UpdatedAt: time.Now(),
	})
}
