package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrClassificationNotFound indicates that a classification with the given ID does not exist.
	ErrClassificationNotFound = errors.New("classification not found")

	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrScheduledNotFound indicates that a scheduled transaction with the given ID does not exist.
	ErrScheduledNotFound = errors.New("scheduled transaction not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrAllocationNotFound indicates that a portfolio has no allocation for the given ticker.
	ErrAllocationNotFound = errors.New("allocation not found")

	// ErrQuoteNotFound indicates that no quote has been stored for the given symbol.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrSettingNotFound indicates that a settings key has never been written.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrExchangeRateNotFound indicates no record for a specific currency pair and period.
	ErrExchangeRateNotFound = errors.New("exchange rate for currency pair not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidCurrency indicates a currency code outside the known enumeration.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInvalidTransactionKind indicates a transaction kind outside the known enumeration.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrInvalidScheduleKind indicates a recurrence kind outside the known enumeration.
	ErrInvalidScheduleKind = errors.New("invalid schedule kind")

	// ErrInvalidMonth indicates a month index outside 0-11.
	ErrInvalidMonth = errors.New("month must be between 0 and 11")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, not missing entities or validation issues.
var (
	ErrFailedToRetrieveQuotes   = errors.New("failed to retrieve quotes")
	ErrFailedToRefreshQuotes    = errors.New("failed to refresh quotes")
	ErrFailedToGetPosition      = errors.New("failed to compute portfolio position")
	ErrFailedToGetProfitability = errors.New("failed to build profitability report")

	// ErrProviderTokenNotConfigured indicates the quote provider token has not been set up.
	ErrProviderTokenNotConfigured = errors.New("quote provider token not configured")
)
