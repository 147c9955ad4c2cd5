package request

// OverrideRateRequest represents the request body for storing an exchange
// rate. Year 0 and month 0 target the latest rate table; a concrete year and
// zero-based month write a historical snapshot.
type OverrideRateRequest struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Rate  float64 `json:"rate"`
}
