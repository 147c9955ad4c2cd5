package validation

import (
	"fmt"
	"strings"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ValidateCreateAsset validates an asset registration request.
//
// Required fields:
//   - name: Must be non-empty
//   - classificationId: Must be a valid UUID
//   - currency: Must be one of the known currency codes
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if err := ValidateUUID(req.ClassificationID); err != nil {
		errors["classificationId"] = err.Error()
	}

	if !model.Currency(req.Currency).Valid() {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", req.Currency)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateAsset validates the fields present on an asset update request.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.ClassificationID != nil {
		if err := ValidateUUID(*req.ClassificationID); err != nil {
			errors["classificationId"] = err.Error()
		}
	}

	if req.Currency != nil && !model.Currency(*req.Currency).Valid() {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", *req.Currency)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
