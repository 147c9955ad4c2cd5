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

// ClassificationHandler handles HTTP requests for classification endpoints.
type ClassificationHandler struct {
	classificationService *service.ClassificationService
}

// NewClassificationHandler creates a new ClassificationHandler with the provided service dependency.
func NewClassificationHandler(classificationService *service.ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{
		classificationService: classificationService,
	}
}

// Classifications handles GET requests to retrieve all classifications.
//
// Endpoint: GET /api/classification
// Response: 200 OK with array of Classification
func (h *ClassificationHandler) Classifications(w http.ResponseWriter, _ *http.Request) {
	classifications, err := h.classificationService.GetClassifications()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve classifications", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, classifications)
}

// GetClassification handles GET requests to retrieve a single classification by ID.
//
// Endpoint: GET /api/classification/{uuid}
// Response: 200 OK with Classification
// Error: 404 Not Found if the classification does not exist
func (h *ClassificationHandler) GetClassification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	classification, err := h.classificationService.GetClassification(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassificationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrClassificationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve classification", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, classification)
}

// CreateClassification handles POST requests to register a classification.
//
// Endpoint: POST /api/classification
// Request Body: CreateClassificationRequest (name)
// Response: 201 Created with Classification
// Error: 400 Bad Request if the name is empty
func (h *ClassificationHandler) CreateClassification(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateClassificationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "name is required")
		return
	}

	classification, err := h.classificationService.CreateClassification(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create classification", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, classification)
}

// DeleteClassification handles DELETE requests to remove a classification.
//
// Endpoint: DELETE /api/classification/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the classification does not exist
func (h *ClassificationHandler) DeleteClassification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.classificationService.DeleteClassification(id); err != nil {
		if errors.Is(err, apperrors.ErrClassificationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrClassificationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete classification", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
