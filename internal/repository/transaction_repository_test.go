package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
	"github.com/dmelo/patrimonio-backend/internal/testutil"
)

func TestTransactionRepository_GetTransactions(t *testing.T) {
	t.Run("returns empty slice when no transactions exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		transactions, err := repo.GetTransactions(model.TransactionFilter{})
		if err != nil {
			t.Fatalf("GetTransactions failed: %v", err)
		}

		if len(transactions) != 0 {
			t.Errorf("Expected empty slice, got %d items", len(transactions))
		}
	})

	t.Run("returns transactions ordered by date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		classification := testutil.NewClassification().Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2025-03-10").Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2025-01-05").Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2025-02-20").Build(t, db)

		transactions, err := repo.GetTransactions(model.TransactionFilter{})
		if err != nil {
			t.Fatalf("GetTransactions failed: %v", err)
		}

		if len(transactions) != 3 {
			t.Fatalf("Expected 3 transactions, got %d", len(transactions))
		}
		for i := 1; i < len(transactions); i++ {
			if transactions[i].Date.Before(transactions[i-1].Date) {
				t.Errorf("Expected dates in ascending order, got %v before %v",
					transactions[i-1].Date, transactions[i].Date)
			}
		}
	})

	t.Run("filters by year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		classification := testutil.NewClassification().Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2024-12-31").Build(t, db)
		inYear := testutil.NewTransaction(classification.ID).WithDate("2025-06-15").Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2026-01-01").Build(t, db)

		transactions, err := repo.GetTransactions(model.TransactionFilter{Year: 2025})
		if err != nil {
			t.Fatalf("GetTransactions failed: %v", err)
		}

		if len(transactions) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(transactions))
		}
		if transactions[0].ID != inYear.ID {
			t.Errorf("Expected transaction %q, got %q", inYear.ID, transactions[0].ID)
		}
	})

	t.Run("filters completed entries only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		classification := testutil.NewClassification().Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2025-01-10").Build(t, db)
		done := testutil.NewTransaction(classification.ID).WithDate("2025-02-10").Done().Build(t, db)

		transactions, err := repo.GetTransactions(model.TransactionFilter{DoneOnly: true})
		if err != nil {
			t.Fatalf("GetTransactions failed: %v", err)
		}

		if len(transactions) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(transactions))
		}
		if transactions[0].ID != done.ID {
			t.Errorf("Expected transaction %q, got %q", done.ID, transactions[0].ID)
		}
		if !transactions[0].Done {
			t.Error("Expected entry to be marked done")
		}
	})
}

func TestTransactionRepository_DoneByYear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	classification := testutil.NewClassification().Build(t, db)
	testutil.NewTransaction(classification.ID).WithDate("2025-03-01").Build(t, db)
	testutil.NewTransaction(classification.ID).WithDate("2024-03-01").Done().Build(t, db)
	want := testutil.NewTransaction(classification.ID).WithDate("2025-03-01").Done().Build(t, db)

	transactions, err := repo.DoneByYear(2025)
	if err != nil {
		t.Fatalf("DoneByYear failed: %v", err)
	}

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].ID != want.ID {
		t.Errorf("Expected transaction %q, got %q", want.ID, transactions[0].ID)
	}
}

func TestTransactionRepository_GetTransactionOnID(t *testing.T) {
	t.Run("returns transaction with all fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		classification := testutil.NewClassification().Build(t, db)
		asset := testutil.NewAsset(classification.ID).Build(t, db)
		created := testutil.NewTransaction(classification.ID).
			WithAsset(asset.ID).
			WithKind(model.KindDividends).
			WithValue(12.34).
			WithCurrency(model.USD).
			WithDate("2025-04-30").
			Done().
			Build(t, db)

		found, err := repo.GetTransactionOnID(created.ID)
		if err != nil {
			t.Fatalf("GetTransactionOnID failed: %v", err)
		}

		if found.AssetID != asset.ID {
			t.Errorf("Expected asset %q, got %q", asset.ID, found.AssetID)
		}
		if found.Kind != model.KindDividends {
			t.Errorf("Expected kind DIVIDENDS, got %q", found.Kind)
		}
		if found.Value != 12.34 {
			t.Errorf("Expected value 12.34, got %v", found.Value)
		}
		if found.Currency != model.USD {
			t.Errorf("Expected currency USD, got %q", found.Currency)
		}
		wantDate := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)
		if !found.Date.Equal(wantDate) {
			t.Errorf("Expected date %v, got %v", wantDate, found.Date)
		}
		if !found.Done {
			t.Error("Expected entry to be marked done")
		}
	})

	t.Run("returns ErrTransactionNotFound for unknown ID", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		_, err := repo.GetTransactionOnID(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransactionRepository_Update(t *testing.T) {
	t.Run("rewrites an existing entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		classification := testutil.NewClassification().Build(t, db)
		created := testutil.NewTransaction(classification.ID).WithValue(100).Build(t, db)

		created.Value = 250
		created.Done = true
		if err := repo.Update(created); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		found, err := repo.GetTransactionOnID(created.ID)
		if err != nil {
			t.Fatalf("GetTransactionOnID failed: %v", err)
		}
		if found.Value != 250 {
			t.Errorf("Expected value 250, got %v", found.Value)
		}
		if !found.Done {
			t.Error("Expected entry to be marked done")
		}
	})

	t.Run("returns ErrTransactionNotFound for unknown ID", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		classification := testutil.NewClassification().Build(t, db)
		err := repo.Update(model.Transaction{
			ID:               testutil.MakeID(),
			ClassificationID: classification.ID,
			Kind:             model.KindBuy,
			Currency:         model.BRL,
			Date:             time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		})
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransactionRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	classification := testutil.NewClassification().Build(t, db)
	created := testutil.NewTransaction(classification.ID).Build(t, db)

	if err := repo.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := repo.GetTransactionOnID(created.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound after delete, got %v", err)
	}

	if err := repo.Delete(created.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound on second delete, got %v", err)
	}
}
