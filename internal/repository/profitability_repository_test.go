package repository_test

import (
	"testing"

	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
	"github.com/dmelo/patrimonio-backend/internal/testutil"
)

func TestProfitabilityRepository_RecordsForYear(t *testing.T) {
	t.Run("returns empty slice when no records exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewProfitabilityRepository(db)

		records, err := repo.RecordsForYear(2025)
		if err != nil {
			t.Fatalf("RecordsForYear failed: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("Expected empty slice, got %d records", len(records))
		}
	})

	t.Run("returns only the requested year ordered by classification and month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewProfitabilityRepository(db)

		classification := testutil.NewClassification().Build(t, db)

		testutil.InsertProfitability(t, db, model.ProfitabilityRecord{
			Year: 2025, ClassificationID: classification.ID, Month: 5, Value: 1200, Currency: model.BRL,
		})
		testutil.InsertProfitability(t, db, model.ProfitabilityRecord{
			Year: 2025, ClassificationID: classification.ID, Month: 1, Value: 1000, Currency: model.BRL,
		})
		testutil.InsertProfitability(t, db, model.ProfitabilityRecord{
			Year: 2024, ClassificationID: classification.ID, Month: 1, Value: 900, Currency: model.BRL,
		})

		records, err := repo.RecordsForYear(2025)
		if err != nil {
			t.Fatalf("RecordsForYear failed: %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}
		if records[0].Month != 1 || records[1].Month != 5 {
			t.Errorf("Expected months [1 5], got [%d %d]", records[0].Month, records[1].Month)
		}
	})
}

func TestProfitabilityRepository_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProfitabilityRepository(db)

	classification := testutil.NewClassification().Build(t, db)

	record := model.ProfitabilityRecord{
		ID:               testutil.MakeID(),
		Year:             2025,
		ClassificationID: classification.ID,
		Month:            3,
		Value:            1500,
		Currency:         model.BRL,
	}
	if err := repo.Upsert(record); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// Same cell, new value: the (year, classification, month) key wins over
	// the fresh ID.
	record.ID = testutil.MakeID()
	record.Value = 1750
	if err := repo.Upsert(record); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	records, err := repo.RecordsForYear(2025)
	if err != nil {
		t.Fatalf("RecordsForYear failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Value != 1750 {
		t.Errorf("Expected value 1750, got %v", records[0].Value)
	}
}
