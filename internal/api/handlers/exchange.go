package handlers

import (
	"net/http"
	"strconv"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/api/response"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/service"
	"github.com/dmelo/patrimonio-backend/internal/validation"
)

// ExchangeHandler handles HTTP requests for exchange rate endpoints.
type ExchangeHandler struct {
	exchangeService *service.ExchangeService
}

// NewExchangeHandler creates a new ExchangeHandler with the provided service dependency.
func NewExchangeHandler(exchangeService *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{
		exchangeService: exchangeService,
	}
}

// Rates handles GET requests to retrieve every stored rate row, latest and
// monthly snapshots alike.
//
// Endpoint: GET /api/exchange/rates
// Response: 200 OK with array of ExchangeRate
func (h *ExchangeHandler) Rates(w http.ResponseWriter, _ *http.Request) {
	rates, err := h.exchangeService.List()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve exchange rates", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rates)
}

// OverrideRate handles PUT requests to store one rate row. Year 0 and month
// 0 write the latest rate; a concrete year and zero-based month write a
// historical snapshot. The reciprocal direction is derived on read.
//
// Endpoint: PUT /api/exchange/rates
// Request Body: OverrideRateRequest (from, to, year, month, rate)
// Response: 204 No Content
// Error: 400 Bad Request if validation fails
func (h *ExchangeHandler) OverrideRate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.OverrideRateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateOverrideRate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.exchangeService.OverrideRate(req); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store exchange rate", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ConvertResponse carries a conversion result. Currency is the original
// currency, unchanged, when no rate is known for the pair.
type ConvertResponse struct {
	Value    response.Float64 `json:"value"`
	Currency model.Currency   `json:"currency"`
}

// Convert handles GET requests to exchange a value between currencies using
// the latest rates. A missing rate passes the value through unchanged in its
// original currency rather than failing.
//
// Endpoint: GET /api/exchange/convert?value=100&from=USD&to=BRL
// Response: 200 OK with ConvertResponse
// Error: 400 Bad Request if a parameter is missing or malformed
func (h *ExchangeHandler) Convert(w http.ResponseWriter, r *http.Request) {
	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid value parameter", err.Error())
		return
	}

	from := r.URL.Query().Get("from")
	if err := validation.ValidateCurrency(from); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid from parameter", err.Error())
		return
	}
	to := r.URL.Query().Get("to")
	if err := validation.ValidateCurrency(to); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid to parameter", err.Error())
		return
	}

	converted, err := h.exchangeService.Convert(value, model.Currency(from), model.Currency(to))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to convert value", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ConvertResponse{
		Value:    response.Float64(converted.Value),
		Currency: converted.Currency,
	})
}
