package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
)

// SettingRepository provides data access methods for the key/value setting
// table, used for the encrypted quote-provider token.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves the value stored under key. Returns ErrSettingNotFound when
// the key has never been set.
func (s *SettingRepository) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting table: %w", err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *SettingRepository) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO setting (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}
