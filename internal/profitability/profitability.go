// Package profitability builds the year-by-year, month-by-month
// profitability tables: classification rows, growth rate, variation,
// variation rate, pairwise accumulated variation, yield and aggregated
// transaction buckets, all normalized to the default currency.
package profitability

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/exchange"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/summarize"
)

// RecordStore is the persistence boundary for profitability cells.
type RecordStore interface {
	RecordsForYear(year int) ([]model.ProfitabilityRecord, error)
	Upsert(record model.ProfitabilityRecord) error
}

// ClassificationRegistry resolves classification ids and names.
type ClassificationRegistry interface {
	List() ([]model.Classification, error)
	ResolveByName(name string) (model.Classification, bool, error)
}

// TransactionLedger exposes the completed transactions of a year.
type TransactionLedger interface {
	DoneByYear(year int) ([]model.Transaction, error)
}

// RateSource provides exchange-rate tables: the latest snapshot and, when
// captured, the historical snapshot of a given calendar month.
type RateSource interface {
	Latest() (exchange.Table, error)
	ForMonth(year, month int) (exchange.Table, bool, error)
}

// LiveValues exposes today's market value per classification id, as derived
// from the portfolio position calculator. Each classification carries one
// subtotal per currency; the consumer converts them before summing.
type LiveValues interface {
	MarketValueByClassification() (map[string][]model.CurrencyAmount, error)
}

// Service orchestrates the profitability derivation chain. All derivations
// are pure functions of the stores' current snapshots; the service holds no
// caches and recomputes on every call.
type Service struct {
	records         RecordStore
	classifications ClassificationRegistry
	ledger          TransactionLedger
	rates           RateSource
	live            LiveValues
	defaultCurrency model.Currency

	// now is the clock; tests pin it to exercise current-month policies.
	now func() time.Time
}

// NewService creates a profitability service. The default currency is an
// explicit parameter threaded through every conversion; there is no global.
func NewService(
	records RecordStore,
	classifications ClassificationRegistry,
	ledger TransactionLedger,
	rates RateSource,
	live LiveValues,
	defaultCurrency model.Currency,
) *Service {
	return &Service{
		records:         records,
		classifications: classifications,
		ledger:          ledger,
		rates:           rates,
		live:            live,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
	}
}

// WithClock replaces the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Report is the complete profitability derivation for one year.
type Report struct {
	Year          int                          `json:"year"`
	Rows          []model.RowData              `json:"rows"`
	GrowthRate    []float64                    `json:"growthRate"`
	Variation     []float64                    `json:"variation"`
	VariationRate []float64                    `json:"variationRate"`
	Accumulated   []float64                    `json:"accumulated"`
	Yield         []float64                    `json:"yield"`
	Transactions  model.AggregatedTransactions `json:"transactions"`
	EquityRows    []model.RowData              `json:"equityRows"`
}

// Report derives the full profitability table for the given year.
func (s *Service) Report(year int) (*Report, error) {
	classes, err := s.classifications.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list classifications: %w", err)
	}

	values, err := s.portfolioProfitability(year)
	if err != nil {
		return nil, err
	}

	rows := s.rowsData(year, classes, values)

	aggregated, err := s.AggregatedTransactions(year)
	if err != nil {
		return nil, err
	}

	previousEnd, err := s.previousYearEndValue(year)
	if err != nil {
		return nil, err
	}

	matrix := make([][]float64, 0, len(rows))
	for _, row := range rows {
		matrix = append(matrix, cellValues(row))
	}
	totals := summarize.Matrix(matrix)

	variation := summarize.Variation(summarize.VariationInput{
		LastValue:     previousEnd,
		Values:        totals,
		Incomes:       aggregated.Incomes,
		Withdrawals:   aggregated.Withdrawals,
		Contributions: aggregated.Contributions,
	})
	variationRate := summarize.VariationRate(previousEnd, variation, aggregated.Incomes)

	return &Report{
		Year:          year,
		Rows:          rows,
		GrowthRate:    summarize.GrowthRate(previousEnd, totals),
		Variation:     variation,
		VariationRate: variationRate,
		Accumulated:   summarize.VariationAccumulated(variationRate),
		Yield:         summarize.YieldRate(aggregated.Incomes, aggregated.Contributions),
		Transactions:  aggregated,
		EquityRows:    s.equityContributionRows(year, totals, aggregated),
	}, nil
}

// profitabilitySource loads the recorded cells of a year, normalized to the
// default currency. Historical per-month rates are used only for months that
// are already in the past (or any month of a prior year); future months of
// the current year convert with the latest available rate. That asymmetry is
// policy, not a bug: projected cells should track today's rate.
func (s *Service) profitabilitySource(year int) (map[string][]float64, error) {
	records, err := s.records.RecordsForYear(year)
	if err != nil {
		return nil, fmt.Errorf("failed to load profitability records: %w", err)
	}

	values := map[string][]float64{}
	for _, record := range records {
		if record.Month < 0 || record.Month >= model.MonthsPerYear {
			continue
		}
		row, ok := values[record.ClassificationID]
		if !ok {
			row = make([]float64, model.MonthsPerYear)
			values[record.ClassificationID] = row
		}
		rates, err := s.ratesFor(year, record.Month)
		if err != nil {
			return nil, err
		}
		currency := record.Currency
		if currency == "" {
			currency = s.defaultCurrency
		}
		row[record.Month] = rates.Exchange(record.Value, currency, s.defaultCurrency).Value
	}
	return values, nil
}

// portfolioProfitability applies the live-projection policy on top of the
// recorded source: when the selected year is the real current year, months at
// or after the current calendar month are overwritten with today's computed
// market value per classification. Past months show the historical record;
// present and future months repeat today's snapshot.
func (s *Service) portfolioProfitability(year int) (map[string][]float64, error) {
	values, err := s.profitabilitySource(year)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if year != now.Year() {
		return values, nil
	}

	liveValues, err := s.live.MarketValueByClassification()
	if err != nil {
		return nil, fmt.Errorf("failed to compute live market values: %w", err)
	}
	latest, err := s.rates.Latest()
	if err != nil {
		return nil, fmt.Errorf("failed to load latest exchange rates: %w", err)
	}

	currentMonth := int(now.Month()) - 1
	for classificationID, subtotals := range liveValues {
		row, ok := values[classificationID]
		if !ok {
			row = make([]float64, model.MonthsPerYear)
			values[classificationID] = row
		}
		value := 0.0
		for _, amount := range subtotals {
			value += latest.Exchange(amount.Value, amount.Currency, s.defaultCurrency).Value
		}
		for month := currentMonth; month < model.MonthsPerYear; month++ {
			row[month] = value
		}
	}
	return values, nil
}

// rowsData maps each known classification to a display row. Cells at or
// after the current month of the current year are disabled (frozen): they
// hold projected values and must not be edited. Rows of a future year are
// fully disabled; rows of past years are fully editable.
func (s *Service) rowsData(year int, classes []model.Classification, values map[string][]float64) []model.RowData {
	rows := make([]model.RowData, 0, len(classes))
	for _, class := range classes {
		row := model.RowData{
			Label:     class.Name,
			Operation: model.OperationPlus,
			Cells:     make([]model.CellData, model.MonthsPerYear),
		}
		classValues := values[class.ID]
		for month := range row.Cells {
			var value float64
			if month < len(classValues) {
				value = classValues[month]
			}
			row.Cells[month] = model.CellData{
				Value:    value,
				Disabled: s.cellDisabled(year, month),
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Service) cellDisabled(year, month int) bool {
	now := s.now()
	if year > now.Year() {
		return true
	}
	if year < now.Year() {
		return false
	}
	return month >= int(now.Month())-1
}

// AggregatedTransactions scans a year's completed transactions and buckets
// them by month and kind, converting each value to the default currency with
// the rate policy of that transaction's month.
func (s *Service) AggregatedTransactions(year int) (model.AggregatedTransactions, error) {
	transactions, err := s.ledger.DoneByYear(year)
	if err != nil {
		return model.AggregatedTransactions{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	aggregated := model.AggregatedTransactions{
		Incomes:       make([]float64, model.MonthsPerYear),
		Contributions: make([]float64, model.MonthsPerYear),
		Sell:          make([]float64, model.MonthsPerYear),
		Withdrawals:   make([]float64, model.MonthsPerYear),
	}

	for _, tx := range transactions {
		month := int(tx.Date.Month()) - 1
		rates, err := s.ratesFor(year, month)
		if err != nil {
			return model.AggregatedTransactions{}, err
		}
		value := rates.Exchange(tx.Value, tx.Currency, s.defaultCurrency).Value

		switch tx.Kind {
		case model.KindDividends, model.KindIOEReturn, model.KindRentReturn:
			aggregated.Incomes[month] += value
		case model.KindContribution, model.KindBuy:
			aggregated.Contributions[month] += value
		case model.KindWithdrawal:
			aggregated.Withdrawals[month] += value
		case model.KindSell:
			aggregated.Sell[month] += value
		}
	}
	return aggregated, nil
}

// previousYearEndValue sums the December cell of every classification row of
// the prior year, the baseline threaded into the growth and variation chain.
// A year with no records contributes 0.
func (s *Service) previousYearEndValue(year int) (float64, error) {
	values, err := s.profitabilitySource(year - 1)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, row := range values {
		sum += row[model.MonthsPerYear-1]
	}
	return sum, nil
}

// equityContributionRows combines the synthetic total-equity row with the
// contribution, accumulated-contribution and income rows, in that fixed
// order.
func (s *Service) equityContributionRows(year int, totals []float64, aggregated model.AggregatedTransactions) []model.RowData {
	accumulated := make([]float64, model.MonthsPerYear)
	var running float64
	for month := range accumulated {
		running += at(aggregated.Contributions, month)
		accumulated[month] = running
	}

	return []model.RowData{
		s.row(year, "Patrimônio", model.OperationNone, totals),
		s.row(year, "Aportes", model.OperationPlus, aggregated.Contributions),
		s.row(year, "Aportes acumulados", model.OperationNone, accumulated),
		s.row(year, "Rendimentos", model.OperationPlus, aggregated.Incomes),
	}
}

func (s *Service) row(year int, label string, op model.Operation, values []float64) model.RowData {
	row := model.RowData{
		Label:     label,
		Operation: op,
		Cells:     make([]model.CellData, model.MonthsPerYear),
	}
	for month := range row.Cells {
		row.Cells[month] = model.CellData{
			Value:    at(values, month),
			Disabled: s.cellDisabled(year, month),
		}
	}
	return row
}

// Update writes a single profitability cell. The classification name is
// resolved to its stable id; an unresolvable name falls back to being used as
// the id itself, best effort, never an error. The cell's row is lazily
// initialized: writing month 5 of a year that has no records for that
// classification creates the remaining months zero-filled.
func (s *Service) Update(year int, classifyName string, month int, value float64) error {
	if month < 0 || month >= model.MonthsPerYear {
		return fmt.Errorf("%w: %d", apperrors.ErrInvalidMonth, month)
	}

	classificationID := classifyName
	if class, ok, err := s.classifications.ResolveByName(classifyName); err != nil {
		return fmt.Errorf("failed to resolve classification %q: %w", classifyName, err)
	} else if ok {
		classificationID = class.ID
	}

	records, err := s.records.RecordsForYear(year)
	if err != nil {
		return fmt.Errorf("failed to load profitability records: %w", err)
	}
	existing := map[int]model.ProfitabilityRecord{}
	for _, record := range records {
		if record.ClassificationID == classificationID {
			existing[record.Month] = record
		}
	}

	if len(existing) == 0 {
		// First write for this year/classification: materialize the whole
		// zero-filled row so every month has a cell to edit.
		for m := 0; m < model.MonthsPerYear; m++ {
			existing[m] = model.ProfitabilityRecord{
				ID:               uuid.New().String(),
				Year:             year,
				ClassificationID: classificationID,
				Month:            m,
				Currency:         s.defaultCurrency,
			}
		}
		for m := 0; m < model.MonthsPerYear; m++ {
			record := existing[m]
			if m == month {
				record.Value = value
			}
			if err := s.records.Upsert(record); err != nil {
				return fmt.Errorf("failed to persist profitability cell: %w", err)
			}
		}
		return nil
	}

	record, ok := existing[month]
	if !ok {
		record = model.ProfitabilityRecord{
			ID:               uuid.New().String(),
			Year:             year,
			ClassificationID: classificationID,
			Month:            month,
			Currency:         s.defaultCurrency,
		}
	}
	record.Value = value
	if err := s.records.Upsert(record); err != nil {
		return fmt.Errorf("failed to persist profitability cell: %w", err)
	}
	return nil
}

// SummarizeByClass groups the selected year's normalized rows by
// classification name and sums all twelve months, for the allocation and
// dashboard views.
func (s *Service) SummarizeByClass(year int) ([]summarize.ClassValue, error) {
	classes, err := s.classifications.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list classifications: %w", err)
	}
	names := make(map[string]string, len(classes))
	for _, class := range classes {
		names[class.ID] = class.Name
	}

	values, err := s.portfolioProfitability(year)
	if err != nil {
		return nil, err
	}

	items := make([]model.ProfitabilityByClass, 0, len(values))
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		items = append(items, model.ProfitabilityByClass{
			Classify: names[id],
			Currency: s.defaultCurrency,
			Values:   values[id],
		})
	}

	latest, err := s.rates.Latest()
	if err != nil {
		return nil, fmt.Errorf("failed to load latest exchange rates: %w", err)
	}
	return summarize.ClassYear(items, latest, s.defaultCurrency), nil
}

// ratesFor picks the rate table for a calendar month: the stored historical
// snapshot for past months, the latest snapshot otherwise (including when a
// historical snapshot was never captured).
func (s *Service) ratesFor(year, month int) (exchange.Table, error) {
	now := s.now()
	currentMonth := int(now.Month()) - 1

	isPast := year < now.Year() || (year == now.Year() && month < currentMonth)
	if isPast {
		table, ok, err := s.rates.ForMonth(year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to load exchange rates for %d-%02d: %w", year, month+1, err)
		}
		if ok {
			return table, nil
		}
	}

	table, err := s.rates.Latest()
	if err != nil {
		return nil, fmt.Errorf("failed to load latest exchange rates: %w", err)
	}
	return table, nil
}

func cellValues(row model.RowData) []float64 {
	values := make([]float64, len(row.Cells))
	for i, cell := range row.Cells {
		values[i] = cell.Value
	}
	return values
}

func at(arr []float64, i int) float64 {
	if i < 0 || i >= len(arr) {
		return 0
	}
	return arr[i]
}
