// Package exchange implements the currency converter: a reciprocal rate
// table and conversion helpers used to normalize monetary values to the
// application's default currency.
package exchange

import (
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// Table maps fromCurrency -> toCurrency -> factor. It is reciprocal by
// construction: Set stores both directions, and a currency always converts
// to itself with factor 1.
type Table map[model.Currency]map[model.Currency]float64

// NewTable returns an empty rate table.
func NewTable() Table {
	return Table{}
}

// Set records the factor for from -> to and its reciprocal for to -> from.
// A zero factor is ignored; storing it would poison the reciprocal with
// Infinity.
func (t Table) Set(from, to model.Currency, factor float64) {
	if factor == 0 {
		return
	}
	t.set(from, to, factor)
	t.set(to, from, 1/factor)
}

func (t Table) set(from, to model.Currency, factor float64) {
	if t[from] == nil {
		t[from] = map[model.Currency]float64{}
	}
	t[from][to] = factor
}

// Rate looks up the factor for from -> to. Same-currency conversions always
// resolve to 1, whether or not the pair was ever stored.
func (t Table) Rate(from, to model.Currency) (float64, bool) {
	if from == to {
		return 1, true
	}
	factor, ok := t[from][to]
	return factor, ok
}

// Exchange converts value from one currency to another. When the rate is
// unknown the conversion is a documented no-op pass-through: the original
// value and currency are returned unchanged, never an error. A genuinely
// absent rate therefore yields silently unconverted figures; keeping the
// table populated is the refresh job's responsibility.
func (t Table) Exchange(value float64, from, to model.Currency) model.CurrencyAmount {
	factor, ok := t.Rate(from, to)
	if !ok {
		return model.CurrencyAmount{Value: value, Currency: from}
	}
	return model.CurrencyAmount{Value: value * factor, Currency: to}
}

// Enhance wraps a monetary figure with both its original amount and the
// amount converted to the default currency.
func (t Table) Enhance(value float64, original, defaultCurrency model.Currency) model.ExchangeValue {
	return model.ExchangeValue{
		Original:  model.CurrencyAmount{Value: value, Currency: original},
		Exchanged: t.Exchange(value, original, defaultCurrency),
	}
}

// EnhanceFields wraps each named numeric field of a record with its original
// and exchanged amounts. Fields absent from values pass through untouched
// (they simply do not appear in the result).
func (t Table) EnhanceFields(values map[string]float64, original, defaultCurrency model.Currency) map[string]model.ExchangeValue {
	enhanced := make(map[string]model.ExchangeValue, len(values))
	for field, value := range values {
		enhanced[field] = t.Enhance(value, original, defaultCurrency)
	}
	return enhanced
}
