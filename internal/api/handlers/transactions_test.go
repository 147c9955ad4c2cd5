package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmelo/patrimonio-backend/internal/api/handlers"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/testutil"
)

func TestTransactionHandler_Transactions(t *testing.T) {
	t.Run("returns all entries without filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		classification := testutil.NewClassification().Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2024-05-01").Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2025-05-01").Done().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var resp []model.Transaction
		testutil.DecodeJSON(t, w, &resp)

		if len(resp) != 2 {
			t.Errorf("Expected 2 transactions, got %d", len(resp))
		}
	})

	t.Run("filters by year and done", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		classification := testutil.NewClassification().Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2025-05-01").Build(t, db)
		want := testutil.NewTransaction(classification.ID).WithDate("2025-06-01").Done().Build(t, db)
		testutil.NewTransaction(classification.ID).WithDate("2024-06-01").Done().Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"year": "2025", "done": "true"})
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		var resp []model.Transaction
		testutil.DecodeJSON(t, w, &resp)

		if len(resp) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(resp))
		}
		if resp[0].ID != want.ID {
			t.Errorf("Expected transaction %q, got %q", want.ID, resp[0].ID)
		}
	})

	t.Run("rejects a non-numeric year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"year": "twenty"})
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("records a ledger entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		classification := testutil.NewClassification().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", map[string]any{
			"classificationId": classification.ID,
			"kind":             "CONTRIBUTION",
			"value":            1000.0,
			"currency":         "BRL",
			"date":             "2025-03-15",
			"done":             true,
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp model.Transaction
		testutil.DecodeJSON(t, w, &resp)

		if resp.Kind != model.KindContribution {
			t.Errorf("Expected kind CONTRIBUTION, got %q", resp.Kind)
		}
		if !resp.Done {
			t.Error("Expected entry to be marked done")
		}
	})

	t.Run("rejects an unknown transaction kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		classification := testutil.NewClassification().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", map[string]any{
			"classificationId": classification.ID,
			"kind":             "TRANSFER",
			"value":            100.0,
			"currency":         "BRL",
			"date":             "2025-03-15",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown classification", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", map[string]any{
			"classificationId": testutil.MakeID(),
			"kind":             "BUY",
			"value":            100.0,
			"currency":         "BRL",
			"date":             "2025-03-15",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

	classification := testutil.NewClassification().Build(t, db)
	created := testutil.NewTransaction(classification.ID).WithValue(100).Build(t, db)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/api/transaction/"+created.ID,
		map[string]any{"value": 350.0, "done": true},
		map[string]string{"uuid": created.ID})
	w := httptest.NewRecorder()

	handler.UpdateTransaction(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp model.Transaction
	testutil.DecodeJSON(t, w, &resp)

	if resp.Value != 350 {
		t.Errorf("Expected value 350, got %v", resp.Value)
	}
	if !resp.Done {
		t.Error("Expected entry to be marked done")
	}
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

	classification := testutil.NewClassification().Build(t, db)
	created := testutil.NewTransaction(classification.ID).Build(t, db)

	req := testutil.NewRequestWithURLParams(http.MethodDelete,
		"/api/transaction/"+created.ID, map[string]string{"uuid": created.ID})
	w := httptest.NewRecorder()

	handler.DeleteTransaction(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.DeleteTransaction(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 on second delete, got %d", w.Code)
	}
}
