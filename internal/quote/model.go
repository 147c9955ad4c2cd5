package quote

import "time"

// chartResponse maps the provider's chart JSON. The provider returns nested
// result objects with parallel timestamp and price arrays plus an optional
// top-level error string.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency     string `json:"currency"`
				Symbol       string `json:"symbol"`
				ExchangeName string `json:"exchangeName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []float64 `json:"open"`
					Close []float64 `json:"close"`
					High  []float64 `json:"high"`
					Low   []float64 `json:"low"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// tick is one trading day extracted from a chart response.
type tick struct {
	Date  time.Time
	Open  float64
	Close float64
	High  float64
	Low   float64
}
