package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ValidateCreateScheduled validates a scheduled transaction creation request.
//
// Required fields:
//   - description: Must be non-empty
//   - kind: Must be a known transaction kind
//   - currency: Must be a known currency code
//   - startDate, endDate: Must be in YYYY-MM-DD format with start <= end
//
// scheduleKind is NOT restricted to the known enumeration: unknown kinds are
// stored as-is and the date generator degrades them to a single occurrence.
func ValidateCreateScheduled(req request.CreateScheduledRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !model.TransactionKind(req.Kind).Valid() {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	if !model.Currency(req.Currency).Valid() {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", req.Currency)
	}

	start, startErr := time.Parse("2006-01-02", req.StartDate)
	if startErr != nil {
		errors["startDate"] = startErr.Error()
	}
	end, endErr := time.Parse("2006-01-02", req.EndDate)
	if endErr != nil {
		errors["endDate"] = endErr.Error()
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errors["endDate"] = "endDate cannot be before startDate"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateScheduled validates the fields present on a scheduled transaction update request.
func ValidateUpdateScheduled(req request.UpdateScheduledRequest) error {
	errors := make(map[string]string)

	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		errors["description"] = "description cannot be empty"
	}

	if req.Kind != nil && !model.TransactionKind(*req.Kind).Valid() {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", *req.Kind)
	}

	if req.Currency != nil && !model.Currency(*req.Currency).Valid() {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", *req.Currency)
	}

	if req.StartDate != nil {
		if _, err := time.Parse("2006-01-02", *req.StartDate); err != nil {
			errors["startDate"] = err.Error()
		}
	}
	if req.EndDate != nil {
		if _, err := time.Parse("2006-01-02", *req.EndDate); err != nil {
			errors["endDate"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
