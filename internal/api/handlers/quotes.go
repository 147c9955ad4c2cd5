package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/api/response"
	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/service"
)

// QuoteHandler handles HTTP requests for market quote endpoints.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler with the provided service dependency.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// Quotes handles GET requests to retrieve the latest known quotes for a
// comma-separated list of symbols. Symbols without a stored quote are absent
// from the result.
//
// Endpoint: GET /api/quote?symbols=PETR4.SA,VOO
// Response: 200 OK with map of symbol to Quote
// Error: 400 Bad Request if the symbols parameter is empty
func (h *QuoteHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	param := strings.TrimSpace(r.URL.Query().Get("symbols"))
	if param == "" {
		response.RespondError(w, http.StatusBadRequest, "symbols parameter is required", "")
		return
	}

	quotes, err := h.quoteService.GetQuotes(strings.Split(param, ","))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// GetQuote handles GET requests to retrieve the latest known quote for one symbol.
//
// Endpoint: GET /api/quote/{symbol}
// Response: 200 OK with Quote
// Error: 404 Not Found if no quote is stored for the symbol
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	quote, err := h.quoteService.GetQuote(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuoteNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrQuoteNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}

// Refresh handles POST requests to fetch fresh quotes for every allocated
// ticker from the provider, outside the periodic schedule.
//
// Endpoint: POST /api/quote/refresh
// Response: 204 No Content
// Error: 502 Bad Gateway if the provider fetch fails
func (h *QuoteHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.quoteService.RefreshAll(r.Context()); err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRefreshQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// SetProviderToken handles PUT requests to store the quote provider token.
// The token is encrypted before it touches the database.
//
// Endpoint: PUT /api/quote/token
// Request Body: SetProviderTokenRequest (token)
// Response: 204 No Content
// Error: 400 Bad Request if the token is empty
func (h *QuoteHandler) SetProviderToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetProviderTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Token) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "token is required")
		return
	}

	if err := h.quoteService.SetProviderToken(req.Token); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store provider token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
