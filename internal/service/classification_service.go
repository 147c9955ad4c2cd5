package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
)

// ClassificationService handles classification-related business logic operations.
type ClassificationService struct {
	classificationRepo *repository.ClassificationRepository
}

// NewClassificationService creates a new ClassificationService with the provided repository dependencies.
func NewClassificationService(
	classificationRepo *repository.ClassificationRepository,
) *ClassificationService {
	return &ClassificationService{
		classificationRepo: classificationRepo,
	}
}

// GetClassifications retrieves all classifications ordered by name.
func (s *ClassificationService) GetClassifications() ([]model.Classification, error) {
	return s.classificationRepo.List()
}

// GetClassification retrieves a single classification by its ID.
func (s *ClassificationService) GetClassification(id string) (model.Classification, error) {
	return s.classificationRepo.GetOnID(id)
}

// CreateClassification registers a new classification.
func (s *ClassificationService) CreateClassification(req request.CreateClassificationRequest) (*model.Classification, error) {
	classification := &model.Classification{
		ID:   uuid.New().String(),
		Name: req.Name,
	}

	if err := s.classificationRepo.Create(*classification); err != nil {
		return nil, fmt.Errorf("failed to create classification: %w", err)
	}

	return classification, nil
}

// DeleteClassification removes a classification by its ID.
func (s *ClassificationService) DeleteClassification(id string) error {
	return s.classificationRepo.Delete(id)
}
