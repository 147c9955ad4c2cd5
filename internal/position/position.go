// Package position derives the live position of a portfolio from its
// allocations and the latest quotes. The position is never stored; it is a
// pure function of (allocations, quotes) recomputed on every read.
package position

import (
	"math"

	"github.com/dmelo/patrimonio-backend/internal/model"
)

// TotalKey is the synthetic ticker under which the aggregate entry is placed.
const TotalKey = "total"

// Trend indicates how the current quote compares to the average price.
type Trend string

const (
	TrendUp        Trend = "up"
	TrendDown      Trend = "down"
	TrendUnchanged Trend = "unchanged"
)

// AllocationQuoted is an allocation enriched with quote-derived metrics.
// The synthetic total entry carries NaN for the per-asset fields that cannot
// be summed (quantity, quote, average price).
type AllocationQuoted struct {
	Ticker         string  `json:"ticker"`
	Quantity       float64 `json:"quantity"`
	Quote          float64 `json:"quote"`
	AveragePrice   float64 `json:"averagePrice"`
	InitialValue   float64 `json:"initialValue"`
	MarketValue    float64 `json:"marketValue"`
	PercPlanned    float64 `json:"percPlanned"`
	PercAllocation float64 `json:"percAllocation"`
	Profit         float64 `json:"profit"`
	Performance    float64 `json:"performance"`
	Trend          Trend   `json:"trend"`
}

// Calculate computes the quoted position for a set of allocations.
//
// The computation is two-pass and fixed-point free: the first pass derives
// per-asset market value, profit and performance while accumulating the
// total; the second divides each market value by the now-known total to get
// the percentage allocation.
//
// Division by zero is not trapped: a zero quantity or a zero total market
// value propagates NaN or Infinity through average price, performance and
// percentage allocation. Downstream display guards; the calculator is a
// faithful pass-through of the arithmetic. Tickers without a quote price at
// zero.
func Calculate(quotes map[string]model.Quote, allocations map[string]model.AllocationRecord) map[string]AllocationQuoted {
	result := make(map[string]AllocationQuoted, len(allocations)+1)
	total := AllocationQuoted{
		Ticker:       TotalKey,
		Quantity:     math.NaN(),
		Quote:        math.NaN(),
		AveragePrice: math.NaN(),
		Performance:  math.NaN(),
	}

	for ticker, allocation := range allocations {
		quote := quotes[ticker].Price
		averagePrice := truncate2(allocation.InitialValue / allocation.Quantity)
		marketValue := quote * allocation.Quantity

		quoted := AllocationQuoted{
			Ticker:         ticker,
			Quantity:       allocation.Quantity,
			Quote:          quote,
			AveragePrice:   averagePrice,
			InitialValue:   allocation.InitialValue,
			MarketValue:    marketValue,
			PercPlanned:    allocation.PercPlanned,
			PercAllocation: 0,
			Profit:         allocation.Quantity * (quote - averagePrice),
			Performance:    (marketValue - allocation.InitialValue) / allocation.InitialValue,
			Trend:          trendOf(quote, averagePrice),
		}
		result[ticker] = quoted

		total.MarketValue += quoted.MarketValue
		total.InitialValue += quoted.InitialValue
		total.PercPlanned += quoted.PercPlanned
		total.PercAllocation += quoted.PercAllocation
		total.Profit += quoted.Profit
		total.Performance = total.Profit / total.MarketValue
	}

	for ticker, quoted := range result {
		quoted.PercAllocation = quoted.MarketValue / total.MarketValue
		result[ticker] = quoted
		total.PercAllocation += quoted.PercAllocation
	}

	total.Trend = trendOf(total.MarketValue, total.InitialValue)
	result[TotalKey] = total
	return result
}

func trendOf(current, reference float64) Trend {
	switch {
	case current > reference:
		return TrendUp
	case current < reference:
		return TrendDown
	default:
		return TrendUnchanged
	}
}

// truncate2 truncates toward zero to two decimal places. Truncation, not
// rounding, keeps the stored cost basis from drifting above the paid price.
func truncate2(v float64) float64 {
	return math.Trunc(v*100) / 100
}
