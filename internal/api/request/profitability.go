package request

// UpdateProfitabilityRequest represents the request body for writing one
// monthly profitability cell. Classify is the classification name shown in
// the table; Month is zero-based.
type UpdateProfitabilityRequest struct {
	Classify string  `json:"classify"`
	Month    int     `json:"month"`
	Value    float64 `json:"value"`
}
