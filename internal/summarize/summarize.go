// Package summarize implements the stateless numeric aggregation functions
// behind the profitability tables: classification grouping, month-wise matrix
// summation, growth rate, variation, variation rate, pairwise accumulated
// variation and yield rate.
//
// All functions are pure. Division by zero is not trapped beyond the
// documented first-element baseline guard: NaN and Infinity are valid
// sentinel outputs that callers must treat as values, not errors.
package summarize

import (
	"math"

	"github.com/dmelo/patrimonio-backend/internal/exchange"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ClassValue is a summed value for one classification.
type ClassValue struct {
	Classify string  `json:"classify"`
	Value    float64 `json:"value"`
}

// Class groups items by classification and sums their values. Items with an
// empty classification are dropped. Result order follows first appearance.
func Class(items []ClassValue) []ClassValue {
	index := make(map[string]int)
	result := []ClassValue{}
	for _, item := range items {
		if item.Classify == "" {
			continue
		}
		if i, ok := index[item.Classify]; ok {
			result[i].Value += item.Value
			continue
		}
		index[item.Classify] = len(result)
		result = append(result, item)
	}
	return result
}

// ClassMonth groups items by classification and sums the value of a single
// zero-based month, converting each to the default currency first.
func ClassMonth(items []model.ProfitabilityByClass, month int, rates exchange.Table, defaultCurrency model.Currency) []ClassValue {
	values := make([]ClassValue, 0, len(items))
	for _, item := range items {
		value := at(item.Values, month)
		values = append(values, ClassValue{
			Classify: item.Classify,
			Value:    rates.Exchange(value, item.Currency, defaultCurrency).Value,
		})
	}
	return Class(values)
}

// ClassYear groups items by classification and sums all twelve months,
// converting each to the default currency first.
func ClassYear(items []model.ProfitabilityByClass, rates exchange.Table, defaultCurrency model.Currency) []ClassValue {
	values := make([]ClassValue, 0, len(items))
	for _, item := range items {
		var sum float64
		for _, value := range item.Values {
			sum += rates.Exchange(value, item.Currency, defaultCurrency).Value
		}
		values = append(values, ClassValue{Classify: item.Classify, Value: sum})
	}
	return Class(values)
}

// Matrix sums value arrays element-wise. Ragged inputs are zero-padded: a
// missing index contributes 0 and the result is as long as the longest row.
func Matrix(rows [][]float64) []float64 {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	sums := make([]float64, width)
	for _, row := range rows {
		for i, value := range row {
			sums[i] += value
		}
	}
	return sums
}

// GrowthRate computes the month-over-month growth percentage of values,
// seeded with lastValue (the prior year's closing value). The baseline is
// running: after each element it becomes that element's value.
//
// When the seed baseline is exactly 0 the first element emits 0 instead of
// Infinity. This guard also discards the true rate for that element; the
// behavior is intentional and preserved.
func GrowthRate(lastValue float64, values []float64) []float64 {
	rates := make([]float64, len(values))
	for i, value := range values {
		if i == 0 && lastValue == 0 {
			rates[i] = 0
			lastValue = value
			continue
		}
		rates[i] = math.Round(((value - lastValue) / lastValue) * 100)
		lastValue = value
	}
	return rates
}

// VariationInput carries the series needed to derive monthly variation.
// Incomes, Withdrawals and Contributions may be shorter than Values; missing
// months contribute 0.
type VariationInput struct {
	LastValue     float64
	Values        []float64
	Incomes       []float64
	Withdrawals   []float64
	Contributions []float64
}

// Variation computes the month-over-month equity variation net of cashflow:
//
//	variation = value - (lastValue + contribution - income - withdrawal)
//
// The baseline is running and the zero-seed first-element guard of GrowthRate
// applies identically.
func Variation(in VariationInput) []float64 {
	lastValue := in.LastValue
	variations := make([]float64, len(in.Values))
	for i, value := range in.Values {
		if i == 0 && lastValue == 0 {
			variations[i] = 0
			lastValue = value
			continue
		}
		variations[i] = value - (lastValue + at(in.Contributions, i) - at(in.Incomes, i) - at(in.Withdrawals, i))
		lastValue = value
	}
	return variations
}

// VariationRate converts monthly variations to percentage rates with two
// decimal places:
//
//	rate = round((variation / (lastValue + income)) * 10000) / 100
//
// Unlike GrowthRate, the running baseline becomes the variation itself after
// each element, not the underlying value. The zero-seed first-element guard
// applies.
func VariationRate(lastValue float64, variations, incomes []float64) []float64 {
	rates := make([]float64, len(variations))
	for i, variation := range variations {
		if i == 0 && lastValue == 0 {
			rates[i] = 0
			lastValue = variation
			continue
		}
		rates[i] = math.Round((variation/(lastValue+at(incomes, i)))*10000) / 100
		lastValue = variation
	}
	return rates
}

// VariationAccumulated compounds consecutive pairs of variation rates:
//
//	accumulated[0] = rate[0]
//	accumulated[n] = (1 + rate[n]) * (1 + rate[n-1]) - 1
//
// rounded to four decimals. This is pairwise compounding, not a true running
// cumulative product; for sequences longer than two elements it diverges from
// standard accumulated-return semantics. The behavior is preserved as is
// pending product-owner confirmation that it is a defect.
func VariationAccumulated(rates []float64) []float64 {
	accumulated := make([]float64, len(rates))
	for i, rate := range rates {
		if i == 0 {
			accumulated[i] = rate
			continue
		}
		accumulated[i] = math.Round(((1+rate)*(1+rates[i-1])-1)*10000) / 10000
	}
	return accumulated
}

// YieldRate computes value as a rounded percentage of income per element.
// When both value and income are 0 the element yields 0 rather than NaN; any
// other zero denominator propagates Infinity per the documented policy.
func YieldRate(values, incomes []float64) []float64 {
	rates := make([]float64, len(values))
	for i, value := range values {
		income := at(incomes, i)
		if value == 0 && income == 0 {
			rates[i] = 0
			continue
		}
		rates[i] = math.Round((value / income) * 100)
	}
	return rates
}

// at reads arr[i], treating out-of-range indexes as 0.
func at(arr []float64, i int) float64 {
	if i < 0 || i >= len(arr) {
		return 0
	}
	return arr[i]
}
