package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
	"github.com/dmelo/patrimonio-backend/internal/schedule"
)

// ScheduledService handles recurring cashflow entries and the projection of
// their occurrence dates.
type ScheduledService struct {
	scheduledRepo *repository.ScheduledRepository
}

// NewScheduledService creates a new ScheduledService with the provided repository dependencies.
func NewScheduledService(scheduledRepo *repository.ScheduledRepository) *ScheduledService {
	return &ScheduledService{
		scheduledRepo: scheduledRepo,
	}
}

// GetScheduled retrieves all scheduled transactions.
func (s *ScheduledService) GetScheduled() ([]model.ScheduledTransaction, error) {
	return s.scheduledRepo.GetScheduled()
}

// GetScheduledOnID retrieves a single scheduled transaction by its ID.
func (s *ScheduledService) GetScheduledOnID(id string) (model.ScheduledTransaction, error) {
	return s.scheduledRepo.GetScheduledOnID(id)
}

// ProjectDates generates the occurrence dates of one scheduled transaction
// within a filter window. Dates outside the entry's own range never appear,
// so the result may be empty.
func (s *ScheduledService) ProjectDates(id string, filterStart, filterEnd time.Time) ([]time.Time, error) {
	scheduled, err := s.scheduledRepo.GetScheduledOnID(id)
	if err != nil {
		return nil, err
	}

	dates := schedule.Dates(
		schedule.Range{Start: scheduled.StartDate, End: scheduled.EndDate},
		schedule.Range{Start: filterStart, End: filterEnd},
		scheduled.ScheduleKind,
	)
	return dates, nil
}

// CreateScheduled registers a new recurring entry.
func (s *ScheduledService) CreateScheduled(req request.CreateScheduledRequest) (*model.ScheduledTransaction, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, err
	}

	scheduled := &model.ScheduledTransaction{
		ID:           uuid.New().String(),
		Description:  req.Description,
		Kind:         model.TransactionKind(req.Kind),
		Value:        req.Value,
		Currency:     model.Currency(req.Currency),
		ScheduleKind: model.Scheduled(req.ScheduleKind),
		StartDate:    startDate,
		EndDate:      endDate,
	}

	if err := s.scheduledRepo.Create(*scheduled); err != nil {
		return nil, fmt.Errorf("failed to create scheduled transaction: %w", err)
	}

	return scheduled, nil
}

// UpdateScheduled applies the fields present on the request to an existing recurring entry.
func (s *ScheduledService) UpdateScheduled(id string, req request.UpdateScheduledRequest) (*model.ScheduledTransaction, error) {
	scheduled, err := s.scheduledRepo.GetScheduledOnID(id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		scheduled.Description = *req.Description
	}
	if req.Kind != nil {
		scheduled.Kind = model.TransactionKind(*req.Kind)
	}
	if req.Value != nil {
		scheduled.Value = *req.Value
	}
	if req.Currency != nil {
		scheduled.Currency = model.Currency(*req.Currency)
	}
	if req.ScheduleKind != nil {
		scheduled.ScheduleKind = model.Scheduled(*req.ScheduleKind)
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, err
		}
		scheduled.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, err
		}
		scheduled.EndDate = endDate
	}

	if err := s.scheduledRepo.Update(scheduled); err != nil {
		return nil, fmt.Errorf("failed to update scheduled transaction: %w", err)
	}

	return &scheduled, nil
}

// DeleteScheduled removes a recurring entry by its ID.
func (s *ScheduledService) DeleteScheduled(id string) error {
	return s.scheduledRepo.Delete(id)
}
