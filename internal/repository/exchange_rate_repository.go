package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/exchange"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ExchangeRateRepository provides data access methods for the persisted
// exchange-rate table. Rows with year 0 and month 0 are the latest rates;
// rows keyed by (year, month) are historical monthly snapshots used for past
// months of the profitability table.
type ExchangeRateRepository struct {
	db *sql.DB
}

// NewExchangeRateRepository creates a new ExchangeRateRepository with the provided database connection.
func NewExchangeRateRepository(db *sql.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// Latest rebuilds the latest rate table from the stored rows. Reciprocals
// are restored through exchange.Table.Set, so each pair needs only one
// stored direction.
func (s *ExchangeRateRepository) Latest() (exchange.Table, error) {
	return s.tableFor(0, 0)
}

// ForMonth rebuilds the historical snapshot table of a calendar month. The
// boolean reports whether any snapshot row exists for that month.
func (s *ExchangeRateRepository) ForMonth(year, month int) (exchange.Table, bool, error) {
	table, err := s.tableFor(year, month)
	if err != nil {
		return nil, false, err
	}
	return table, len(table) > 0, nil
}

func (s *ExchangeRateRepository) tableFor(year, month int) (exchange.Table, error) {
	rows, err := s.db.Query(`
		SELECT from_currency, to_currency, rate
		FROM exchange_rate
		WHERE year = ? AND month = ?
	`, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange_rate table: %w", err)
	}
	defer rows.Close()

	table := exchange.NewTable()
	for rows.Next() {
		var from, to model.Currency
		var rate float64
		if err := rows.Scan(&from, &to, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan exchange_rate table results: %w", err)
		}
		table.Set(from, to, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange_rate table: %w", err)
	}

	return table, nil
}

// List retrieves every stored rate row, latest and snapshots alike.
func (s *ExchangeRateRepository) List() ([]model.ExchangeRate, error) {
	rows, err := s.db.Query(`
		SELECT from_currency, to_currency, year, month, rate, updated_at
		FROM exchange_rate
		ORDER BY year, month, from_currency, to_currency
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange_rate table: %w", err)
	}
	defer rows.Close()

	rates := []model.ExchangeRate{}
	for rows.Next() {
		var r model.ExchangeRate
		var updatedAt string
		if err := rows.Scan(&r.From, &r.To, &r.Year, &r.Month, &r.Rate, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange_rate table results: %w", err)
		}
		if r.UpdatedAt, err = ParseTime(updatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange_rate table: %w", err)
	}

	return rates, nil
}

// Upsert stores one rate row. Only one direction per pair is stored; the
// reciprocal is derived when the table is rebuilt.
func (s *ExchangeRateRepository) Upsert(r model.ExchangeRate) error {
	updatedAt := r.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO exchange_rate (from_currency, to_currency, year, month, rate, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(from_currency, to_currency, year, month) DO UPDATE SET
			rate = excluded.rate,
			updated_at = excluded.updated_at
	`, r.From, r.To, r.Year, r.Month, r.Rate, updatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}
