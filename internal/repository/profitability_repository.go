package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ProfitabilityRepository provides data access methods for the monthly
// profitability record table.
type ProfitabilityRepository struct {
	db *sql.DB
}

// NewProfitabilityRepository creates a new ProfitabilityRepository with the provided database connection.
func NewProfitabilityRepository(db *sql.DB) *ProfitabilityRepository {
	return &ProfitabilityRepository{db: db}
}

// RecordsForYear retrieves all monthly records of a calendar year, ordered
// by classification and month.
func (s *ProfitabilityRepository) RecordsForYear(year int) ([]model.ProfitabilityRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, year, classification_id, month, value, currency
		FROM profitability
		WHERE year = ?
		ORDER BY classification_id, month
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query profitability table: %w", err)
	}
	defer rows.Close()

	records := []model.ProfitabilityRecord{}
	for rows.Next() {
		var r model.ProfitabilityRecord
		if err := rows.Scan(&r.ID, &r.Year, &r.ClassificationID, &r.Month, &r.Value, &r.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan profitability table results: %w", err)
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profitability table: %w", err)
	}

	return records, nil
}

// Upsert writes one monthly cell, keyed by (year, classification, month).
func (s *ProfitabilityRepository) Upsert(r model.ProfitabilityRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO profitability (id, year, classification_id, month, value, currency)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(year, classification_id, month) DO UPDATE SET
			value = excluded.value,
			currency = excluded.currency
	`, r.ID, r.Year, r.ClassificationID, r.Month, r.Value, r.Currency)
	if err != nil {
		return fmt.Errorf("failed to upsert profitability record: %w", err)
	}
	return nil
}
