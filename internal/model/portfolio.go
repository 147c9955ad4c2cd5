package model

// Portfolio represents a portfolio from the database. Allocations hang off it
// keyed by ticker; the derived position is never stored.
type Portfolio struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Currency         Currency `json:"currency"`
	ClassificationID string   `json:"classificationId"`
}

// AllocationRecord is the one mutable, persisted position entity: the
// quantity and cost basis of a single ticker within a portfolio. AveragePrice
// is derived, not stored.
type AllocationRecord struct {
	ID           string  `json:"id"`
	PortfolioID  string  `json:"portfolioId"`
	Ticker       string  `json:"ticker"`
	Quantity     float64 `json:"quantity"`
	InitialValue float64 `json:"initialValue"`
	PercPlanned  float64 `json:"percPlanned"`
}

// AveragePrice returns the cost basis per unit. Division by a zero quantity
// propagates as NaN or Infinity; callers display-guard, the model does not.
func (a AllocationRecord) AveragePrice() float64 {
	return a.InitialValue / a.Quantity
}
