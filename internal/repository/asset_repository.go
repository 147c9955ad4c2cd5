package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// AssetRepository provides data access methods for the asset registry.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// GetAssets retrieves all assets ordered by name.
func (s *AssetRepository) GetAssets() ([]model.Asset, error) {
	rows, err := s.db.Query(`
		SELECT id, name, classification_id, currency
		FROM asset
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		var a model.Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.ClassificationID, &a.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets = append(assets, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAssetOnID retrieves a single asset by id.
func (s *AssetRepository) GetAssetOnID(id string) (model.Asset, error) {
	var a model.Asset
	err := s.db.QueryRow(`
		SELECT id, name, classification_id, currency
		FROM asset
		WHERE id = ?
	`, id).Scan(&a.ID, &a.Name, &a.ClassificationID, &a.Currency)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset: %w", err)
	}
	return a, nil
}

// Create inserts a new asset.
func (s *AssetRepository) Create(a model.Asset) error {
	_, err := s.db.Exec(`
		INSERT INTO asset (id, name, classification_id, currency)
		VALUES (?, ?, ?, ?)
	`, a.ID, a.Name, a.ClassificationID, a.Currency)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// Update rewrites an existing asset.
func (s *AssetRepository) Update(a model.Asset) error {
	result, err := s.db.Exec(`
		UPDATE asset
		SET name = ?, classification_id = ?, currency = ?
		WHERE id = ?
	`, a.Name, a.ClassificationID, a.Currency, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// Delete removes an asset by id.
func (s *AssetRepository) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM asset WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}
