package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ClassificationRepository provides data access methods for the
// classification table: the registry profitability rows are grouped by.
type ClassificationRepository struct {
	db *sql.DB
}

// NewClassificationRepository creates a new ClassificationRepository with the provided database connection.
func NewClassificationRepository(db *sql.DB) *ClassificationRepository {
	return &ClassificationRepository{db: db}
}

// List retrieves all classifications ordered by name.
func (s *ClassificationRepository) List() ([]model.Classification, error) {
	rows, err := s.db.Query(`SELECT id, name FROM classification ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query classification table: %w", err)
	}
	defer rows.Close()

	classifications := []model.Classification{}
	for rows.Next() {
		var c model.Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan classification table results: %w", err)
		}
		classifications = append(classifications, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating classification table: %w", err)
	}

	return classifications, nil
}

// GetOnID retrieves a single classification by id.
func (s *ClassificationRepository) GetOnID(id string) (model.Classification, error) {
	var c model.Classification
	err := s.db.QueryRow(`SELECT id, name FROM classification WHERE id = ?`, id).
		Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return model.Classification{}, apperrors.ErrClassificationNotFound
	}
	if err != nil {
		return model.Classification{}, fmt.Errorf("failed to query classification: %w", err)
	}
	return c, nil
}

// ResolveByName looks a classification up by its display name. The boolean
// reports whether the name resolved; an unknown name is not an error.
func (s *ClassificationRepository) ResolveByName(name string) (model.Classification, bool, error) {
	var c model.Classification
	err := s.db.QueryRow(`SELECT id, name FROM classification WHERE name = ?`, name).
		Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return model.Classification{}, false, nil
	}
	if err != nil {
		return model.Classification{}, false, fmt.Errorf("failed to query classification by name: %w", err)
	}
	return c, true, nil
}

// Create inserts a new classification.
func (s *ClassificationRepository) Create(c model.Classification) error {
	_, err := s.db.Exec(`INSERT INTO classification (id, name) VALUES (?, ?)`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("failed to insert classification: %w", err)
	}
	return nil
}

// Delete removes a classification by id.
func (s *ClassificationRepository) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM classification WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete classification: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrClassificationNotFound
	}
	return nil
}
