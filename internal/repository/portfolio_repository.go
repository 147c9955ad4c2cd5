package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio and
// allocation tables.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetPortfolios retrieves all portfolios ordered by name.
func (s *PortfolioRepository) GetPortfolios() ([]model.Portfolio, error) {
	rows, err := s.db.Query(`
		SELECT id, name, currency, classification_id
		FROM portfolio
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}
	for rows.Next() {
		var p model.Portfolio
		var classificationID sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Currency, &classificationID); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		p.ClassificationID = classificationID.String
		portfolios = append(portfolios, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolioOnID retrieves a single portfolio by id.
func (s *PortfolioRepository) GetPortfolioOnID(id string) (model.Portfolio, error) {
	var p model.Portfolio
	var classificationID sql.NullString
	err := s.db.QueryRow(`
		SELECT id, name, currency, classification_id
		FROM portfolio
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Currency, &classificationID)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}
	p.ClassificationID = classificationID.String
	return p, nil
}

// Create inserts a new portfolio.
func (s *PortfolioRepository) Create(p model.Portfolio) error {
	_, err := s.db.Exec(`
		INSERT INTO portfolio (id, name, currency, classification_id)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.Name, p.Currency, nullable(p.ClassificationID))
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// Update rewrites an existing portfolio.
func (s *PortfolioRepository) Update(p model.Portfolio) error {
	result, err := s.db.Exec(`
		UPDATE portfolio
		SET name = ?, currency = ?, classification_id = ?
		WHERE id = ?
	`, p.Name, p.Currency, nullable(p.ClassificationID), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}
	return nil
}

// Delete removes a portfolio and, through the foreign key cascade, its
// allocations.
func (s *PortfolioRepository) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM portfolio WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}
	return nil
}

// GetAllocations retrieves the allocations of a portfolio keyed by ticker.
func (s *PortfolioRepository) GetAllocations(portfolioID string) (map[string]model.AllocationRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, portfolio_id, ticker, quantity, initial_value, perc_planned
		FROM allocation
		WHERE portfolio_id = ?
	`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation table: %w", err)
	}
	defer rows.Close()

	allocations := map[string]model.AllocationRecord{}
	for rows.Next() {
		var a model.AllocationRecord
		if err := rows.Scan(&a.ID, &a.PortfolioID, &a.Ticker, &a.Quantity, &a.InitialValue, &a.PercPlanned); err != nil {
			return nil, fmt.Errorf("failed to scan allocation table results: %w", err)
		}
		allocations[a.Ticker] = a
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation table: %w", err)
	}

	return allocations, nil
}

// GetAllocationOnTicker retrieves one allocation of a portfolio by ticker.
func (s *PortfolioRepository) GetAllocationOnTicker(portfolioID, ticker string) (model.AllocationRecord, error) {
	var a model.AllocationRecord
	err := s.db.QueryRow(`
		SELECT id, portfolio_id, ticker, quantity, initial_value, perc_planned
		FROM allocation
		WHERE portfolio_id = ? AND ticker = ?
	`, portfolioID, ticker).Scan(&a.ID, &a.PortfolioID, &a.Ticker, &a.Quantity, &a.InitialValue, &a.PercPlanned)
	if err == sql.ErrNoRows {
		return model.AllocationRecord{}, apperrors.ErrAllocationNotFound
	}
	if err != nil {
		return model.AllocationRecord{}, fmt.Errorf("failed to query allocation: %w", err)
	}
	return a, nil
}

// AllTickers retrieves the distinct tickers across every portfolio, the
// symbol set the quote refresh job fetches.
func (s *PortfolioRepository) AllTickers() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT ticker FROM allocation ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation tickers: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan allocation ticker: %w", err)
		}
		tickers = append(tickers, ticker)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation tickers: %w", err)
	}

	return tickers, nil
}

// UpsertAllocation inserts an allocation or rewrites the existing
// portfolio/ticker row.
func (s *PortfolioRepository) UpsertAllocation(a model.AllocationRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO allocation (id, portfolio_id, ticker, quantity, initial_value, perc_planned)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(portfolio_id, ticker) DO UPDATE SET
			quantity = excluded.quantity,
			initial_value = excluded.initial_value,
			perc_planned = excluded.perc_planned
	`, a.ID, a.PortfolioID, a.Ticker, a.Quantity, a.InitialValue, a.PercPlanned)
	if err != nil {
		return fmt.Errorf("failed to upsert allocation: %w", err)
	}
	return nil
}

// DeleteAllocation removes one allocation of a portfolio by ticker.
func (s *PortfolioRepository) DeleteAllocation(portfolioID, ticker string) error {
	result, err := s.db.Exec(`
		DELETE FROM allocation WHERE portfolio_id = ? AND ticker = ?
	`, portfolioID, ticker)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAllocationNotFound
	}
	return nil
}
