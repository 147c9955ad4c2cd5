package request

// CreatePortfolioRequest represents the request body for creating a portfolio
type CreatePortfolioRequest struct {
	Name             string `json:"name"`
	Currency         string `json:"currency"`
	ClassificationID string `json:"classificationId"`
}

type UpdatePortfolioRequest struct {
	Name             *string `json:"name,omitempty"`
	Currency         *string `json:"currency,omitempty"`
	ClassificationID *string `json:"classificationId,omitempty"`
}

// UpsertAllocationRequest represents the request body for creating or
// adjusting an allocation within a portfolio. Quantity is the new total
// quantity held, not a delta.
type UpsertAllocationRequest struct {
	Ticker      string  `json:"ticker"`
	Quantity    float64 `json:"quantity"`
	PercPlanned float64 `json:"percPlanned"`
}
