package validation

import (
	"fmt"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ValidateOverrideRate validates an exchange rate override request.
// Year and month must both be zero (latest rate) or both concrete (monthly
// snapshot); the month is zero-based.
func ValidateOverrideRate(req request.OverrideRateRequest) error {
	errors := make(map[string]string)

	if !model.Currency(req.From).Valid() {
		errors["from"] = fmt.Sprintf("invalid currency: %s", req.From)
	}
	if !model.Currency(req.To).Valid() {
		errors["to"] = fmt.Sprintf("invalid currency: %s", req.To)
	}
	if req.From == req.To {
		errors["to"] = "from and to must differ"
	}

	if req.Rate <= 0 {
		errors["rate"] = "rate must be positive"
	}

	if req.Year == 0 && req.Month != 0 {
		errors["month"] = "month requires a year"
	}
	if req.Year != 0 && (req.Month < 0 || req.Month >= model.MonthsPerYear) {
		errors["month"] = "month must be between 0 and 11"
	}
	if req.Year < 0 {
		errors["year"] = "year cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
