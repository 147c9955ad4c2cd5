package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// QuoteRepository provides data access methods for the latest-quote table
// maintained by the refresh job.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

const quoteColumns = `symbol, price, currency, open, high, low, last_update`

// GetQuotes retrieves the stored quotes for the given symbols keyed by
// symbol. Symbols without a stored quote are simply absent from the result.
func (s *QuoteRepository) GetQuotes(symbols []string) (map[string]model.Quote, error) {
	if len(symbols) == 0 {
		return map[string]model.Quote{}, nil
	}

	placeholders := make([]string, len(symbols))
	args := make([]any, len(symbols))
	for i, symbol := range symbols {
		placeholders[i] = "?"
		args[i] = symbol
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT ` + quoteColumns + `
		FROM quote
		WHERE symbol IN (` + strings.Join(placeholders, ",") + `)
	`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote table: %w", err)
	}
	defer rows.Close()

	quotes := map[string]model.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes[q.Symbol] = q
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote table: %w", err)
	}

	return quotes, nil
}

// GetQuoteOnSymbol retrieves a single stored quote.
func (s *QuoteRepository) GetQuoteOnSymbol(symbol string) (model.Quote, error) {
	row := s.db.QueryRow(`
		SELECT `+quoteColumns+`
		FROM quote
		WHERE symbol = ?
	`, symbol)

	q, err := scanQuote(row)
	if err == sql.ErrNoRows {
		return model.Quote{}, apperrors.ErrQuoteNotFound
	}
	if err != nil {
		return model.Quote{}, err
	}
	return q, nil
}

// Upsert stores the latest quote for a symbol, replacing any previous one.
func (s *QuoteRepository) Upsert(q model.Quote) error {
	_, err := s.db.Exec(`
		INSERT INTO quote (symbol, price, currency, open, high, low, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			price = excluded.price,
			currency = excluded.currency,
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			last_update = excluded.last_update
	`, q.Symbol, q.Price, q.Currency, q.Open, q.High, q.Low, q.LastUpdate.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert quote: %w", err)
	}
	return nil
}

func scanQuote(row rowScanner) (model.Quote, error) {
	var q model.Quote
	var lastUpdate string
	err := row.Scan(&q.Symbol, &q.Price, &q.Currency, &q.Open, &q.High, &q.Low, &lastUpdate)
	if err == sql.ErrNoRows {
		return model.Quote{}, err
	}
	if err != nil {
		return model.Quote{}, fmt.Errorf("failed to scan quote table results: %w", err)
	}
	if q.LastUpdate, err = ParseTime(lastUpdate); err != nil {
		return model.Quote{}, err
	}
	return q, nil
}
