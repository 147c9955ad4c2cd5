package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/api/response"
	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/position"
	"github.com/dmelo/patrimonio-backend/internal/service"
	"github.com/dmelo/patrimonio-backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for portfolio, allocation, and
// position endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios handles GET requests to retrieve all portfolios.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of Portfolio
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, _ *http.Request) {
	portfolios, err := h.portfolioService.GetPortfolios()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve portfolios", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET requests to retrieve a single portfolio by ID.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with Portfolio
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio handles POST requests to register a portfolio.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest (name, currency, classificationId)
// Response: 201 Created with Portfolio
// Error: 400 Bad Request if validation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio handles PUT requests to update an existing portfolio.
//
// Endpoint: PUT /api/portfolio/{uuid}
// Request Body: UpdatePortfolioRequest (any subset of name, currency, classificationId)
// Response: 200 OK with the updated Portfolio
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio handles DELETE requests to remove a portfolio and its allocations.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.portfolioService.DeletePortfolio(id); err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Allocations handles GET requests to retrieve a portfolio's allocations keyed by ticker.
//
// Endpoint: GET /api/portfolio/{uuid}/allocation
// Response: 200 OK with map of ticker to AllocationRecord
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) Allocations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	allocations, err := h.portfolioService.GetAllocations(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve allocations", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allocations)
}

// UpsertAllocation handles PUT requests to create or adjust one allocation.
// Quantity on the request is the new total held; on a quantity change the
// cost basis absorbs the delta at the current quote.
//
// Endpoint: PUT /api/portfolio/{uuid}/allocation
// Request Body: UpsertAllocationRequest (ticker, quantity, percPlanned)
// Response: 200 OK with the stored AllocationRecord
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the portfolio does not exist or no quote is stored for the ticker
func (h *PortfolioHandler) UpsertAllocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpsertAllocationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertAllocation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	allocation, err := h.portfolioService.UpsertAllocation(id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) || errors.Is(err, apperrors.ErrQuoteNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to store allocation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allocation)
}

// DeleteAllocation handles DELETE requests to remove one ticker from a portfolio.
//
// Endpoint: DELETE /api/portfolio/{uuid}/allocation/{ticker}
// Response: 204 No Content
// Error: 404 Not Found if the allocation does not exist
func (h *PortfolioHandler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	ticker := chi.URLParam(r, "ticker")

	if err := h.portfolioService.DeleteAllocation(id, ticker); err != nil {
		if errors.Is(err, apperrors.ErrAllocationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAllocationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete allocation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// AllocationQuotedResponse mirrors position.AllocationQuoted with NaN and
// Infinity rendered as null. The synthetic total entry carries them for the
// per-asset fields that cannot be summed.
type AllocationQuotedResponse struct {
	Ticker         string           `json:"ticker"`
	Quantity       response.Float64 `json:"quantity"`
	Quote          response.Float64 `json:"quote"`
	AveragePrice   response.Float64 `json:"averagePrice"`
	InitialValue   response.Float64 `json:"initialValue"`
	MarketValue    response.Float64 `json:"marketValue"`
	PercPlanned    response.Float64 `json:"percPlanned"`
	PercAllocation response.Float64 `json:"percAllocation"`
	Profit         response.Float64 `json:"profit"`
	Performance    response.Float64 `json:"performance"`
	Trend          position.Trend   `json:"trend"`
}

// Position handles GET requests to derive the current position of a
// portfolio from its allocations and the latest quotes. The result includes
// the synthetic "total" entry.
//
// Endpoint: GET /api/portfolio/{uuid}/position
// Response: 200 OK with map of ticker to AllocationQuotedResponse
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) Position(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	pos, err := h.portfolioService.GetPosition(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPosition.Error(), err.Error())
		return
	}

	out := make(map[string]AllocationQuotedResponse, len(pos))
	for ticker, a := range pos {
		out[ticker] = AllocationQuotedResponse{
			Ticker:         a.Ticker,
			Quantity:       response.Float64(a.Quantity),
			Quote:          response.Float64(a.Quote),
			AveragePrice:   response.Float64(a.AveragePrice),
			InitialValue:   response.Float64(a.InitialValue),
			MarketValue:    response.Float64(a.MarketValue),
			PercPlanned:    response.Float64(a.PercPlanned),
			PercAllocation: response.Float64(a.PercAllocation),
			Profit:         response.Float64(a.Profit),
			Performance:    response.Float64(a.Performance),
			Trend:          a.Trend,
		}
	}

	response.RespondJSON(w, http.StatusOK, out)
}
