package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/cache"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
	"github.com/dmelo/patrimonio-backend/internal/secrets"
)

// providerTokenKey is the setting key the encrypted provider token lives under.
const providerTokenKey = "quote_provider_token"

// maxConcurrentFetches caps parallel requests to the quote provider during a
// refresh, keeping the client under the provider's rate limits.
const maxConcurrentFetches = 4

// QuoteProvider fetches the latest market quote for a symbol from the remote
// provider. The token may be empty for providers that need none.
type QuoteProvider interface {
	FetchLatest(ctx context.Context, token, symbol string) (model.Quote, error)
}

// QuoteService handles market quote retrieval, the periodic refresh job, and
// the provider token lifecycle.
type QuoteService struct {
	quoteRepo     *repository.QuoteRepository
	portfolioRepo *repository.PortfolioRepository
	settingRepo   *repository.SettingRepository
	provider      QuoteProvider
	vault         *secrets.Vault
	cache         *cache.TTLCache[model.Quote]
	scheduler     *cron.Cron

	rateRepo     *repository.ExchangeRateRepository
	baseCurrency model.Currency
}

// NewQuoteService creates a new QuoteService with the provided dependencies.
// The vault may be nil, in which case the provider token is stored and used
// in plaintext.
func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	portfolioRepo *repository.PortfolioRepository,
	settingRepo *repository.SettingRepository,
	provider QuoteProvider,
	vault *secrets.Vault,
) *QuoteService {
	return &QuoteService{
		quoteRepo:     quoteRepo,
		portfolioRepo: portfolioRepo,
		settingRepo:   settingRepo,
		provider:      provider,
		vault:         vault,
		cache:         cache.NewTTLCache[model.Quote](5 * time.Minute),
	}
}

// WithRateRebuild makes RefreshAll also rebuild the latest exchange-rate
// table: each known foreign currency is quoted against base through the
// provider's currency-pair symbols.
func (s *QuoteService) WithRateRebuild(rateRepo *repository.ExchangeRateRepository, base model.Currency) *QuoteService {
	s.rateRepo = rateRepo
	s.baseCurrency = base
	return s
}

// GetQuotes retrieves the latest known quotes for a set of symbols, serving
// from the in-process cache where possible and the database otherwise.
// Symbols with no stored quote are absent from the result.
func (s *QuoteService) GetQuotes(symbols []string) (map[string]model.Quote, error) {
	quotes := make(map[string]model.Quote, len(symbols))
	missing := make([]string, 0, len(symbols))

	for _, symbol := range symbols {
		if q, ok := s.cache.Get(symbol); ok {
			quotes[symbol] = q
			continue
		}
		missing = append(missing, symbol)
	}

	if len(missing) > 0 {
		stored, err := s.quoteRepo.GetQuotes(missing)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveQuotes, err)
		}
		for symbol, q := range stored {
			s.cache.Set(symbol, q)
			quotes[symbol] = q
		}
	}

	return quotes, nil
}

// GetQuote retrieves the latest known quote for one symbol.
func (s *QuoteService) GetQuote(symbol string) (model.Quote, error) {
	if q, ok := s.cache.Get(symbol); ok {
		return q, nil
	}
	q, err := s.quoteRepo.GetQuoteOnSymbol(symbol)
	if err != nil {
		return model.Quote{}, err
	}
	s.cache.Set(symbol, q)
	return q, nil
}

// RefreshAll fetches fresh quotes for every ticker allocated in any
// portfolio. Symbols are fetched concurrently; a single failing symbol fails
// the whole refresh so the scheduler logs it.
func (s *QuoteService) RefreshAll(ctx context.Context) error {
	tickers, err := s.portfolioRepo.AllTickers()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshQuotes, err)
	}
	if len(tickers) == 0 {
		return nil
	}

	token, err := s.providerToken()
	if err != nil && !errors.Is(err, apperrors.ErrProviderTokenNotConfigured) {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			quote, err := s.provider.FetchLatest(ctx, token, ticker)
			if err != nil {
				return fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
			}
			if err := s.quoteRepo.Upsert(quote); err != nil {
				return err
			}
			s.cache.Set(ticker, quote)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshQuotes, err)
	}

	s.rebuildRates(ctx, token)
	return nil
}

// rebuildRates refreshes the latest exchange-rate snapshot from the
// provider's currency-pair symbols. A pair that fails to resolve is logged
// and skipped so a provider hiccup never fails the quote refresh.
func (s *QuoteService) rebuildRates(ctx context.Context, token string) {
	if s.rateRepo == nil {
		return
	}

	for _, currency := range model.Currencies {
		if currency == s.baseCurrency || currency == model.UTC {
			continue
		}

		symbol := fmt.Sprintf("%s%s=X", currency, s.baseCurrency)
		quote, err := s.provider.FetchLatest(ctx, token, symbol)
		if err != nil {
			log.Printf("exchange rate rebuild skipped %s: %v", symbol, err)
			continue
		}
		if quote.Price == 0 {
			continue
		}

		err = s.rateRepo.Upsert(model.ExchangeRate{
			From: currency,
			To:   s.baseCurrency,
			Rate: quote.Price,
		})
		if err != nil {
			log.Printf("exchange rate rebuild failed to store %s: %v", symbol, err)
		}
	}
}

// StartScheduler begins refreshing quotes periodically. The schedule uses
// cron syntax, including descriptors like "@every 30m".
func (s *QuoteService) StartScheduler(schedule string) error {
	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.RefreshAll(ctx); err != nil {
			log.Printf("quote refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule quote refresh: %w", err)
	}
	s.scheduler.Start()
	return nil
}

// StopScheduler stops the refresh job, waiting for a running refresh to finish.
func (s *QuoteService) StopScheduler() {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}
}

// SetProviderToken encrypts and stores the provider token.
func (s *QuoteService) SetProviderToken(token string) error {
	stored := token
	if s.vault != nil {
		encrypted, err := s.vault.Encrypt(token)
		if err != nil {
			return err
		}
		stored = encrypted
	}
	return s.settingRepo.Set(providerTokenKey, stored)
}

// providerToken retrieves and decrypts the stored provider token. Returns
// ErrProviderTokenNotConfigured with an empty token when none has been set.
func (s *QuoteService) providerToken() (string, error) {
	stored, err := s.settingRepo.Get(providerTokenKey)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", apperrors.ErrProviderTokenNotConfigured
	}
	if err != nil {
		return "", err
	}
	if s.vault == nil {
		return stored, nil
	}
	return s.vault.Decrypt(stored)
}
