package model

import "time"

// Quote represents the latest known price for a symbol, refreshed
// periodically from the remote quote provider.
type Quote struct {
	Symbol     string    `json:"symbol"`
	Price      float64   `json:"price"`
	Currency   Currency  `json:"currency"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// ExchangeRate is one row of the persisted rate table. Year and Month are
// zero for the latest rate; historical monthly snapshots carry the calendar
// year and the zero-based month they were captured for.
type ExchangeRate struct {
	From      Currency  `json:"from"`
	To        Currency  `json:"to"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updatedAt"`
}
