package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/api/response"
	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/service"
	"github.com/dmelo/patrimonio-backend/internal/validation"
)

// ScheduledHandler handles HTTP requests for recurring entry endpoints.
type ScheduledHandler struct {
	scheduledService *service.ScheduledService
}

// NewScheduledHandler creates a new ScheduledHandler with the provided service dependency.
func NewScheduledHandler(scheduledService *service.ScheduledService) *ScheduledHandler {
	return &ScheduledHandler{
		scheduledService: scheduledService,
	}
}

// Scheduled handles GET requests to retrieve all recurring entries.
//
// Endpoint: GET /api/scheduled
// Response: 200 OK with array of ScheduledTransaction
func (h *ScheduledHandler) Scheduled(w http.ResponseWriter, _ *http.Request) {
	scheduled, err := h.scheduledService.GetScheduled()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve scheduled transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, scheduled)
}

// GetScheduled handles GET requests to retrieve a single recurring entry by ID.
//
// Endpoint: GET /api/scheduled/{uuid}
// Response: 200 OK with ScheduledTransaction
// Error: 404 Not Found if the entry does not exist
func (h *ScheduledHandler) GetScheduled(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	scheduled, err := h.scheduledService.GetScheduledOnID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrScheduledNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrScheduledNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve scheduled transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, scheduled)
}

// DatesResponse carries the projected occurrence dates of one recurring entry.
type DatesResponse struct {
	Dates []time.Time `json:"dates"`
}

// Dates handles GET requests to project the occurrence dates of a recurring
// entry within a window. Dates outside the entry's own range never appear,
// so the list may be empty.
//
// Endpoint: GET /api/scheduled/{uuid}/dates?start=2025-01-01&end=2025-12-31
// Response: 200 OK with DatesResponse
// Error: 400 Bad Request if a date parameter is missing or malformed
// Error: 404 Not Found if the entry does not exist
func (h *ScheduledHandler) Dates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	start, err := validation.ValidateDate(r.URL.Query().Get("start"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid start parameter", err.Error())
		return
	}
	end, err := validation.ValidateDate(r.URL.Query().Get("end"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid end parameter", err.Error())
		return
	}
	if err := validation.ValidateDateRange(start, end); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
		return
	}

	dates, err := h.scheduledService.ProjectDates(id, start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrScheduledNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrScheduledNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to project dates", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, DatesResponse{Dates: dates})
}

// CreateScheduled handles POST requests to register a recurring entry.
//
// Endpoint: POST /api/scheduled
// Request Body: CreateScheduledRequest
// Response: 201 Created with ScheduledTransaction
// Error: 400 Bad Request if validation fails
func (h *ScheduledHandler) CreateScheduled(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateScheduledRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateScheduled(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	scheduled, err := h.scheduledService.CreateScheduled(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create scheduled transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, scheduled)
}

// UpdateScheduled handles PUT requests to update an existing recurring entry.
//
// Endpoint: PUT /api/scheduled/{uuid}
// Request Body: UpdateScheduledRequest (any subset of the entry's fields)
// Response: 200 OK with the updated ScheduledTransaction
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the entry does not exist
func (h *ScheduledHandler) UpdateScheduled(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateScheduledRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateScheduled(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	scheduled, err := h.scheduledService.UpdateScheduled(id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrScheduledNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrScheduledNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update scheduled transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, scheduled)
}

// DeleteScheduled handles DELETE requests to remove a recurring entry.
//
// Endpoint: DELETE /api/scheduled/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the entry does not exist
func (h *ScheduledHandler) DeleteScheduled(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.scheduledService.DeleteScheduled(id); err != nil {
		if errors.Is(err, apperrors.ErrScheduledNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrScheduledNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete scheduled transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
