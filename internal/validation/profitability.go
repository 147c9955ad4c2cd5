package validation

import (
	"strings"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ValidateUpdateProfitability validates a profitability cell update request.
// The classification name is resolved by the service; an unknown name is not
// an error here.
func ValidateUpdateProfitability(req request.UpdateProfitabilityRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Classify) == "" {
		errors["classify"] = "classify is required"
	}

	if req.Month < 0 || req.Month >= model.MonthsPerYear {
		errors["month"] = "month must be between 0 and 11"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
