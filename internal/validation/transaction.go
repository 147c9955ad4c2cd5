package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - classificationId: Must be a valid UUID
//   - kind: Must be a known transaction kind
//   - currency: Must be a known currency code
//   - date: Must be in YYYY-MM-DD format
//
// assetId is optional; when present it must be a valid UUID. Value may be
// zero or negative, matching how corrections are entered.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.ClassificationID); err != nil {
		errors["classificationId"] = err.Error()
	}

	if req.AssetID != "" {
		if err := ValidateUUID(req.AssetID); err != nil {
			errors["assetId"] = err.Error()
		}
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !model.TransactionKind(req.Kind).Valid() {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	if !model.Currency(req.Currency).Valid() {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", req.Currency)
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateTransaction validates the fields present on a transaction update request.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.ClassificationID != nil {
		if err := ValidateUUID(*req.ClassificationID); err != nil {
			errors["classificationId"] = err.Error()
		}
	}

	if req.AssetID != nil && *req.AssetID != "" {
		if err := ValidateUUID(*req.AssetID); err != nil {
			errors["assetId"] = err.Error()
		}
	}

	if req.Kind != nil && !model.TransactionKind(*req.Kind).Valid() {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", *req.Kind)
	}

	if req.Currency != nil && !model.Currency(*req.Currency).Valid() {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", *req.Currency)
	}

	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
