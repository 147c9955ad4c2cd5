package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ScheduledRepository provides data access methods for recurring
// (scheduled) transactions.
type ScheduledRepository struct {
	db *sql.DB
}

// NewScheduledRepository creates a new ScheduledRepository with the provided database connection.
func NewScheduledRepository(db *sql.DB) *ScheduledRepository {
	return &ScheduledRepository{db: db}
}

const scheduledColumns = `id, description, kind, value, currency, schedule_kind, start_date, end_date`

// GetScheduled retrieves all scheduled transactions ordered by start date.
func (s *ScheduledRepository) GetScheduled() ([]model.ScheduledTransaction, error) {
	rows, err := s.db.Query(`
		SELECT ` + scheduledColumns + `
		FROM scheduled_transaction
		ORDER BY start_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled_transaction table: %w", err)
	}
	defer rows.Close()

	scheduled := []model.ScheduledTransaction{}
	for rows.Next() {
		st, err := scanScheduled(rows)
		if err != nil {
			return nil, err
		}
		scheduled = append(scheduled, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scheduled_transaction table: %w", err)
	}

	return scheduled, nil
}

// GetScheduledOnID retrieves a single scheduled transaction by id.
func (s *ScheduledRepository) GetScheduledOnID(id string) (model.ScheduledTransaction, error) {
	row := s.db.QueryRow(`
		SELECT `+scheduledColumns+`
		FROM scheduled_transaction
		WHERE id = ?
	`, id)

	st, err := scanScheduled(row)
	if err == sql.ErrNoRows {
		return model.ScheduledTransaction{}, apperrors.ErrScheduledNotFound
	}
	if err != nil {
		return model.ScheduledTransaction{}, err
	}
	return st, nil
}

// Create inserts a new scheduled transaction.
func (s *ScheduledRepository) Create(st model.ScheduledTransaction) error {
	_, err := s.db.Exec(`
		INSERT INTO scheduled_transaction (id, description, kind, value, currency, schedule_kind, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, st.ID, st.Description, st.Kind, st.Value, st.Currency, st.ScheduleKind,
		st.StartDate.Format("2006-01-02"), st.EndDate.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to insert scheduled transaction: %w", err)
	}
	return nil
}

// Update rewrites an existing scheduled transaction.
func (s *ScheduledRepository) Update(st model.ScheduledTransaction) error {
	result, err := s.db.Exec(`
		UPDATE scheduled_transaction
		SET description = ?, kind = ?, value = ?, currency = ?, schedule_kind = ?, start_date = ?, end_date = ?
		WHERE id = ?
	`, st.Description, st.Kind, st.Value, st.Currency, st.ScheduleKind,
		st.StartDate.Format("2006-01-02"), st.EndDate.Format("2006-01-02"), st.ID)
	if err != nil {
		return fmt.Errorf("failed to update scheduled transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrScheduledNotFound
	}
	return nil
}

// Delete removes a scheduled transaction by id.
func (s *ScheduledRepository) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM scheduled_transaction WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scheduled transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrScheduledNotFound
	}
	return nil
}

func scanScheduled(row rowScanner) (model.ScheduledTransaction, error) {
	var st model.ScheduledTransaction
	var startStr, endStr string

	err := row.Scan(
		&st.ID,
		&st.Description,
		&st.Kind,
		&st.Value,
		&st.Currency,
		&st.ScheduleKind,
		&startStr,
		&endStr,
	)
	if err == sql.ErrNoRows {
		return model.ScheduledTransaction{}, err
	}
	if err != nil {
		return model.ScheduledTransaction{}, fmt.Errorf("failed to scan scheduled_transaction table results: %w", err)
	}

	if st.StartDate, err = ParseTime(startStr); err != nil {
		return model.ScheduledTransaction{}, err
	}
	if st.EndDate, err = ParseTime(endStr); err != nil {
		return model.ScheduledTransaction{}, err
	}
	return st, nil
}
