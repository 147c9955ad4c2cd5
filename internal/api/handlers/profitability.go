package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/api/response"
	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/profitability"
	"github.com/dmelo/patrimonio-backend/internal/validation"
)

// ProfitabilityHandler handles HTTP requests for the profitability table.
type ProfitabilityHandler struct {
	profitabilityService *profitability.Service
}

// NewProfitabilityHandler creates a new ProfitabilityHandler with the provided service dependency.
func NewProfitabilityHandler(profitabilityService *profitability.Service) *ProfitabilityHandler {
	return &ProfitabilityHandler{
		profitabilityService: profitabilityService,
	}
}

// CellResponse is one month cell with NaN and Infinity rendered as null.
type CellResponse struct {
	Value    response.Float64 `json:"value"`
	Disabled bool             `json:"disabled"`
}

// RowResponse is one display row of the profitability table.
type RowResponse struct {
	Label     string          `json:"label"`
	Operation model.Operation `json:"operation"`
	Cells     []CellResponse  `json:"cells"`
}

// ReportResponse is the full profitability derivation for one year.
type ReportResponse struct {
	Year          int                            `json:"year"`
	Rows          []RowResponse                  `json:"rows"`
	GrowthRate    []response.Float64             `json:"growthRate"`
	Variation     []response.Float64             `json:"variation"`
	VariationRate []response.Float64             `json:"variationRate"`
	Accumulated   []response.Float64             `json:"accumulated"`
	Yield         []response.Float64             `json:"yield"`
	Transactions  AggregatedTransactionsResponse `json:"transactions"`
	EquityRows    []RowResponse                  `json:"equityRows"`
}

// AggregatedTransactionsResponse buckets a year's completed transactions by
// month and kind.
type AggregatedTransactionsResponse struct {
	Incomes       []response.Float64 `json:"incomes"`
	Contributions []response.Float64 `json:"contributions"`
	Sell          []response.Float64 `json:"sell"`
	Withdrawals   []response.Float64 `json:"withdrawals"`
}

// Report handles GET requests to derive the profitability table of a year.
//
// Endpoint: GET /api/profitability/{year}
// Response: 200 OK with ReportResponse
// Error: 400 Bad Request if the year is not a number
func (h *ProfitabilityHandler) Report(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	report, err := h.profitabilityService.Report(year)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetProfitability.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, reportResponse(report))
}

// UpdateCell handles PUT requests to write one monthly cell. A fresh
// (year, classification) row is materialized with twelve zero cells before
// the target month is written.
//
// Endpoint: PUT /api/profitability/{year}
// Request Body: UpdateProfitabilityRequest (classify, month, value)
// Response: 204 No Content
// Error: 400 Bad Request if validation fails or the month is out of range
func (h *ProfitabilityHandler) UpdateCell(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	req, err := parseJSON[request.UpdateProfitabilityRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateProfitability(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.profitabilityService.Update(year, req.Classify, req.Month, req.Value); err != nil {
		if errors.Is(err, apperrors.ErrInvalidMonth) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidMonth.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update profitability", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Summary handles GET requests for the per-classification totals of a year.
//
// Endpoint: GET /api/profitability/{year}/summary
// Response: 200 OK with array of classification totals
// Error: 400 Bad Request if the year is not a number
func (h *ProfitabilityHandler) Summary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	summary, err := h.profitabilityService.SummarizeByClass(year)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetProfitability.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

func reportResponse(report *profitability.Report) ReportResponse {
	return ReportResponse{
		Year:          report.Year,
		Rows:          rowResponses(report.Rows),
		GrowthRate:    response.Floats(report.GrowthRate),
		Variation:     response.Floats(report.Variation),
		VariationRate: response.Floats(report.VariationRate),
		Accumulated:   response.Floats(report.Accumulated),
		Yield:         response.Floats(report.Yield),
		Transactions: AggregatedTransactionsResponse{
			Incomes:       response.Floats(report.Transactions.Incomes),
			Contributions: response.Floats(report.Transactions.Contributions),
			Sell:          response.Floats(report.Transactions.Sell),
			Withdrawals:   response.Floats(report.Transactions.Withdrawals),
		},
		EquityRows: rowResponses(report.EquityRows),
	}
}

func rowResponses(rows []model.RowData) []RowResponse {
	out := make([]RowResponse, len(rows))
	for i, row := range rows {
		cells := make([]CellResponse, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = CellResponse{Value: response.Float64(cell.Value), Disabled: cell.Disabled}
		}
		out[i] = RowResponse{Label: row.Label, Operation: row.Operation, Cells: cells}
	}
	return out
}
