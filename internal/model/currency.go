package model

// Currency is the closed set of currency codes known to the application.
// UTC is not a monetary currency; it is a placeholder used by date-oriented
// records that carry no monetary value and must be kept in the enumeration.
type Currency string

const (
	BRL Currency = "BRL"
	EUR Currency = "EUR"
	USD Currency = "USD"
	UTC Currency = "UTC"
)

// Currencies lists every known currency code, placeholder included.
var Currencies = []Currency{BRL, EUR, USD, UTC}

// Valid reports whether c is one of the known currency codes.
func (c Currency) Valid() bool {
	switch c {
	case BRL, EUR, USD, UTC:
		return true
	}
	return false
}

// CurrencyAmount is an immutable monetary snapshot: a value tagged with the
// currency it is denominated in.
type CurrencyAmount struct {
	Value    float64  `json:"value"`
	Currency Currency `json:"currency"`
}

// ExchangeValue carries a monetary figure both in its original currency and
// converted to the default currency.
type ExchangeValue struct {
	Original  CurrencyAmount `json:"original"`
	Exchanged CurrencyAmount `json:"exchanged"`
}
