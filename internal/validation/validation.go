package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmelo/patrimonio-backend/internal/model"
)

// Common validation errors
var (
	ErrInvalidUUID      = fmt.Errorf("invalid UUID format")
	ErrInvalidDateRange = fmt.Errorf("invalid date range")
	ErrEmptySlice       = fmt.Errorf("slice cannot be empty")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateUUIDs validates a slice of UUIDs
func ValidateUUIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptySlice
	}
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDate parses a YYYY-MM-DD date string.
func ValidateDate(date string) (time.Time, error) {
	return time.Parse("2006-01-02", date)
}

// ValidateDateRange checks that start is not after end.
func ValidateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

// ValidateCurrency checks a currency code against the known enumeration.
func ValidateCurrency(code string) error {
	if !model.Currency(code).Valid() {
		return fmt.Errorf("invalid currency: %s", code)
	}
	return nil
}
