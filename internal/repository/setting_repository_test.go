package repository_test

import (
	"errors"
	"testing"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/repository"
	"github.com/dmelo/patrimonio-backend/internal/testutil"
)

func TestSettingRepository(t *testing.T) {
	t.Run("Get returns ErrSettingNotFound for an unset key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		_, err := repo.Get("never_set")
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})

	t.Run("Set then Get round-trips", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		if err := repo.Set("quote_provider_token", "abc123"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		value, err := repo.Get("quote_provider_token")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if value != "abc123" {
			t.Errorf("Expected 'abc123', got %q", value)
		}
	})

	t.Run("Set replaces a previous value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		if err := repo.Set("key", "old"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := repo.Set("key", "new"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		value, err := repo.Get("key")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if value != "new" {
			t.Errorf("Expected 'new', got %q", value)
		}
	})
}
