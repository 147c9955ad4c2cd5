package model

// MonthsPerYear is the width of every month-indexed array in the
// profitability tables. Months are zero-based (0 = January).
const MonthsPerYear = 12

// ProfitabilityRecord is one persisted cell: the recorded equity of a
// classification for a given year and zero-based month.
type ProfitabilityRecord struct {
	ID               string   `json:"id"`
	Year             int      `json:"year"`
	ClassificationID string   `json:"classificationId"`
	Month            int      `json:"month"`
	Value            float64  `json:"value"`
	Currency         Currency `json:"currency"`
}

// ProfitabilityByClass is a full year of monthly values for one
// classification, as consumed by the summarize engine.
type ProfitabilityByClass struct {
	Classify string    `json:"classify"`
	Currency Currency  `json:"currency"`
	Values   []float64 `json:"values"`
}

// Operation tags how a display row combines into totals.
type Operation string

const (
	OperationPlus  Operation = "plus"
	OperationMinus Operation = "minus"
	OperationNone  Operation = "none"
)

// CellData is a single month cell of a profitability row. Disabled marks
// cells at or after the current month of the current year; downstream
// accumulation must honor the flag to keep projected cells frozen.
type CellData struct {
	Value    float64 `json:"value"`
	Disabled bool    `json:"disabled"`
}

// RowData is one display row of the profitability table: a label, the
// operation it contributes with, and twelve month cells.
type RowData struct {
	Label     string     `json:"label"`
	Operation Operation  `json:"operation"`
	Cells     []CellData `json:"cells"`
}

// AggregatedTransactions buckets a year's completed transactions by month
// and kind, already converted to the default currency.
type AggregatedTransactions struct {
	Incomes       []float64 `json:"incomes"`
	Contributions []float64 `json:"contributions"`
	Sell          []float64 `json:"sell"`
	Withdrawals   []float64 `json:"withdrawals"`
}
