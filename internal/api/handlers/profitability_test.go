package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/api/handlers"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
	"github.com/dmelo/patrimonio-backend/internal/summarize"
	"github.com/dmelo/patrimonio-backend/internal/testutil"
)

// The clock is pinned so current-month freezing behaves deterministically.
func fixedClock() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func TestProfitabilityHandler_Report(t *testing.T) {
	t.Run("derives the table of a past year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfitabilityService(t, db, fixedClock)
		handler := handlers.NewProfitabilityHandler(svc)

		classification := testutil.NewClassification().WithName("Ações").Build(t, db)
		testutil.InsertProfitability(t, db, model.ProfitabilityRecord{
			Year: 2024, ClassificationID: classification.ID, Month: 0, Value: 1000, Currency: model.BRL,
		})
		testutil.InsertProfitability(t, db, model.ProfitabilityRecord{
			Year: 2024, ClassificationID: classification.ID, Month: 1, Value: 1100, Currency: model.BRL,
		})

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/profitability/2024",
			map[string]string{"year": "2024"})
		w := httptest.NewRecorder()

		handler.Report(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp handlers.ReportResponse
		testutil.DecodeJSON(t, w, &resp)

		if resp.Year != 2024 {
			t.Errorf("Expected year 2024, got %d", resp.Year)
		}
		if len(resp.Rows) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(resp.Rows))
		}
		row := resp.Rows[0]
		if row.Label != "Ações" {
			t.Errorf("Expected label 'Ações', got %q", row.Label)
		}
		if len(row.Cells) != model.MonthsPerYear {
			t.Fatalf("Expected 12 cells, got %d", len(row.Cells))
		}
		if float64(row.Cells[1].Value) != 1100 {
			t.Errorf("Expected February cell 1100, got %v", row.Cells[1].Value)
		}
		// Past-year cells stay editable.
		if row.Cells[11].Disabled {
			t.Error("Expected past-year cells to be enabled")
		}
		if len(resp.Variation) != model.MonthsPerYear {
			t.Errorf("Expected 12 variation entries, got %d", len(resp.Variation))
		}
	})

	t.Run("freezes cells from the current month onward", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfitabilityService(t, db, fixedClock)
		handler := handlers.NewProfitabilityHandler(svc)

		testutil.NewClassification().WithName("Renda Fixa").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/profitability/2025",
			map[string]string{"year": "2025"})
		w := httptest.NewRecorder()

		handler.Report(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp handlers.ReportResponse
		testutil.DecodeJSON(t, w, &resp)

		row := resp.Rows[0]
		// Clock pinned to June: May is editable, June onward is frozen.
		if row.Cells[4].Disabled {
			t.Error("Expected May cell to be enabled")
		}
		if !row.Cells[5].Disabled {
			t.Error("Expected June cell to be frozen")
		}
	})

	t.Run("rejects a non-numeric year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfitabilityService(t, db, fixedClock)
		handler := handlers.NewProfitabilityHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/profitability/abc",
			map[string]string{"year": "abc"})
		w := httptest.NewRecorder()

		handler.Report(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestProfitabilityHandler_UpdateCell(t *testing.T) {
	t.Run("materializes the row and writes the cell", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfitabilityService(t, db, fixedClock)
		handler := handlers.NewProfitabilityHandler(svc)

		testutil.NewClassification().WithName("Ações").Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/profitability/2024",
			map[string]any{"classify": "Ações", "month": 2, "value": 1500.0},
			map[string]string{"year": "2024"})
		w := httptest.NewRecorder()

		handler.UpdateCell(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d: %s", w.Code, w.Body.String())
		}

		records, err := repository.NewProfitabilityRepository(db).RecordsForYear(2024)
		if err != nil {
			t.Fatalf("RecordsForYear failed: %v", err)
		}
		if len(records) != model.MonthsPerYear {
			t.Fatalf("Expected 12 materialized cells, got %d", len(records))
		}
		if records[2].Value != 1500 {
			t.Errorf("Expected March cell 1500, got %v", records[2].Value)
		}
		if records[0].Value != 0 {
			t.Errorf("Expected untouched cell 0, got %v", records[0].Value)
		}
	})

	t.Run("rejects an out-of-range month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfitabilityService(t, db, fixedClock)
		handler := handlers.NewProfitabilityHandler(svc)

		testutil.NewClassification().WithName("Ações").Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/profitability/2024",
			map[string]any{"classify": "Ações", "month": 12, "value": 1500.0},
			map[string]string{"year": "2024"})
		w := httptest.NewRecorder()

		handler.UpdateCell(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestProfitabilityHandler_Summary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestProfitabilityService(t, db, fixedClock)
	handler := handlers.NewProfitabilityHandler(svc)

	classification := testutil.NewClassification().WithName("Ações").Build(t, db)
	testutil.InsertProfitability(t, db, model.ProfitabilityRecord{
		Year: 2024, ClassificationID: classification.ID, Month: 11, Value: 2000, Currency: model.BRL,
	})

	req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/profitability/2024/summary",
		map[string]string{"year": "2024"})
	w := httptest.NewRecorder()

	handler.Summary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp []summarize.ClassValue
	testutil.DecodeJSON(t, w, &resp)

	if len(resp) != 1 {
		t.Fatalf("Expected 1 classification summary, got %d", len(resp))
	}
	if resp[0].Classify != "Ações" {
		t.Errorf("Expected classification 'Ações', got %q", resp[0].Classify)
	}
	if resp[0].Value != 2000 {
		t.Errorf("Expected summed value 2000, got %v", resp[0].Value)
	}
}
