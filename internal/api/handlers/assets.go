package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/api/response"
	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/service"
	"github.com/dmelo/patrimonio-backend/internal/validation"
)

// AssetHandler handles HTTP requests for asset endpoints.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler with the provided service dependency.
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets handles GET requests to retrieve all registered assets.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
func (h *AssetHandler) Assets(w http.ResponseWriter, _ *http.Request) {
	assets, err := h.assetService.GetAssets()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve assets", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests to retrieve a single asset by ID.
//
// Endpoint: GET /api/asset/{uuid}
// Response: 200 OK with Asset
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	asset, err := h.assetService.GetAsset(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to register an asset.
//
// Endpoint: POST /api/asset
// Request Body: CreateAssetRequest (name, classificationId, currency)
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the classification does not exist
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.CreateAsset(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassificationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrClassificationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset handles PUT requests to update an existing asset.
//
// Endpoint: PUT /api/asset/{uuid}
// Request Body: UpdateAssetRequest (any subset of name, classificationId, currency)
// Response: 200 OK with the updated Asset
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the asset or classification does not exist
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.UpdateAsset(id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) || errors.Is(err, apperrors.ErrClassificationNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove an asset.
//
// Endpoint: DELETE /api/asset/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.assetService.DeleteAsset(id); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
