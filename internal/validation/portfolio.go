package validation

import (
	"fmt"
	"strings"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ValidateCreatePortfolio validates a portfolio creation request.
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if !model.Currency(req.Currency).Valid() {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", req.Currency)
	}

	if req.ClassificationID != "" {
		if err := ValidateUUID(req.ClassificationID); err != nil {
			errors["classificationId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdatePortfolio validates the fields present on a portfolio update request.
func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.Currency != nil && !model.Currency(*req.Currency).Valid() {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", *req.Currency)
	}

	if req.ClassificationID != nil && *req.ClassificationID != "" {
		if err := ValidateUUID(*req.ClassificationID); err != nil {
			errors["classificationId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpsertAllocation validates an allocation upsert request. Quantity
// zero is allowed; the position calculator propagates the resulting NaN
// average price instead of rejecting it.
func ValidateUpsertAllocation(req request.UpsertAllocationRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}

	if req.PercPlanned < 0 || req.PercPlanned > 1 {
		errors["percPlanned"] = "percPlanned must be between 0 and 1"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
