package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
)

// AssetService handles asset-related business logic operations.
type AssetService struct {
	assetRepo          *repository.AssetRepository
	classificationRepo *repository.ClassificationRepository
}

// NewAssetService creates a new AssetService with the provided repository dependencies.
func NewAssetService(
	assetRepo *repository.AssetRepository,
	classificationRepo *repository.ClassificationRepository,
) *AssetService {
	return &AssetService{
		assetRepo:          assetRepo,
		classificationRepo: classificationRepo,
	}
}

// GetAssets retrieves all registered assets ordered by name.
func (s *AssetService) GetAssets() ([]model.Asset, error) {
	return s.assetRepo.GetAssets()
}

// GetAsset retrieves a single asset by its ID.
func (s *AssetService) GetAsset(id string) (model.Asset, error) {
	return s.assetRepo.GetAssetOnID(id)
}

// CreateAsset registers a new asset under an existing classification.
func (s *AssetService) CreateAsset(req request.CreateAssetRequest) (*model.Asset, error) {
	if _, err := s.classificationRepo.GetOnID(req.ClassificationID); err != nil {
		return nil, err
	}

	asset := &model.Asset{
		ID:               uuid.New().String(),
		Name:             req.Name,
		ClassificationID: req.ClassificationID,
		Currency:         model.Currency(req.Currency),
	}

	if err := s.assetRepo.Create(*asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return asset, nil
}

// UpdateAsset applies the fields present on the request to an existing asset.
func (s *AssetService) UpdateAsset(id string, req request.UpdateAssetRequest) (*model.Asset, error) {
	asset, err := s.assetRepo.GetAssetOnID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.ClassificationID != nil {
		if _, err := s.classificationRepo.GetOnID(*req.ClassificationID); err != nil {
			return nil, err
		}
		asset.ClassificationID = *req.ClassificationID
	}
	if req.Currency != nil {
		asset.Currency = model.Currency(*req.Currency)
	}

	if err := s.assetRepo.Update(asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	return &asset, nil
}

// DeleteAsset removes an asset by its ID.
func (s *AssetService) DeleteAsset(id string) error {
	return s.assetRepo.Delete(id)
}
