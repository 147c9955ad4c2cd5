package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/model"
)

// ClassificationBuilder provides a fluent interface for creating test classifications.
//
// Example usage:
//
//	classification := testutil.NewClassification().WithName("Ações").Build(t, db)
type ClassificationBuilder struct {
	ID   string
	Name string
}

// NewClassification creates a ClassificationBuilder with sensible defaults.
func NewClassification() *ClassificationBuilder {
	return &ClassificationBuilder{
		ID:   MakeID(),
		Name: MakeName("Classification"),
	}
}

// WithID sets a custom ID.
func (b *ClassificationBuilder) WithID(id string) *ClassificationBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *ClassificationBuilder) WithName(name string) *ClassificationBuilder {
	b.Name = name
	return b
}

// Build creates the classification in the database and returns it.
func (b *ClassificationBuilder) Build(t *testing.T, db *sql.DB) model.Classification {
	t.Helper()

	_, err := db.Exec(`INSERT INTO classification (id, name) VALUES (?, ?)`, b.ID, b.Name)
	if err != nil {
		t.Fatalf("Failed to create test classification: %v", err)
	}

	return model.Classification{ID: b.ID, Name: b.Name}
}

// AssetBuilder provides a fluent interface for creating test assets.
type AssetBuilder struct {
	ID               string
	Name             string
	ClassificationID string
	Currency         model.Currency
}

// NewAsset creates an AssetBuilder tied to a classification.
func NewAsset(classificationID string) *AssetBuilder {
	return &AssetBuilder{
		ID:               MakeID(),
		Name:             MakeName("Asset"),
		ClassificationID: classificationID,
		Currency:         model.BRL,
	}
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithCurrency sets a custom currency.
func (b *AssetBuilder) WithCurrency(currency model.Currency) *AssetBuilder {
	b.Currency = currency
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO asset (id, name, classification_id, currency)
		VALUES (?, ?, ?, ?)
	`, b.ID, b.Name, b.ClassificationID, b.Currency)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:               b.ID,
		Name:             b.Name,
		ClassificationID: b.ClassificationID,
		Currency:         b.Currency,
	}
}

// TransactionBuilder provides a fluent interface for creating test ledger entries.
//
// Example usage:
//
//	tx := testutil.NewTransaction(classification.ID).
//	    WithKind(model.KindContribution).
//	    WithValue(1000).
//	    WithDate("2025-03-15").
//	    Done().
//	    Build(t, db)
type TransactionBuilder struct {
	ID               string
	AssetID          string
	ClassificationID string
	Kind             model.TransactionKind
	Value            float64
	Currency         model.Currency
	Date             time.Time
	IsDone           bool
}

// NewTransaction creates a TransactionBuilder tied to a classification.
func NewTransaction(classificationID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:               MakeID(),
		ClassificationID: classificationID,
		Kind:             model.KindContribution,
		Value:            100,
		Currency:         model.BRL,
		Date:             time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

// WithAsset ties the entry to an asset.
func (b *TransactionBuilder) WithAsset(assetID string) *TransactionBuilder {
	b.AssetID = assetID
	return b
}

// WithKind sets a custom transaction kind.
func (b *TransactionBuilder) WithKind(kind model.TransactionKind) *TransactionBuilder {
	b.Kind = kind
	return b
}

// WithValue sets a custom value.
func (b *TransactionBuilder) WithValue(value float64) *TransactionBuilder {
	b.Value = value
	return b
}

// WithCurrency sets a custom currency.
func (b *TransactionBuilder) WithCurrency(currency model.Currency) *TransactionBuilder {
	b.Currency = currency
	return b
}

// WithDate sets the entry date from a YYYY-MM-DD string.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	b.Date = parsed
	return b
}

// Done marks the entry as completed.
func (b *TransactionBuilder) Done() *TransactionBuilder {
	b.IsDone = true
	return b
}

// Build creates the ledger entry in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	var assetID any
	if b.AssetID != "" {
		assetID = b.AssetID
	}

	_, err := db.Exec(`
		INSERT INTO "transaction" (id, asset_id, classification_id, kind, value, currency, date, done)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, assetID, b.ClassificationID, b.Kind, b.Value, b.Currency, b.Date.Format("2006-01-02"), b.IsDone)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:               b.ID,
		AssetID:          b.AssetID,
		ClassificationID: b.ClassificationID,
		Kind:             b.Kind,
		Value:            b.Value,
		Currency:         b.Currency,
		Date:             b.Date,
		Done:             b.IsDone,
	}
}

// ScheduledBuilder provides a fluent interface for creating test recurring entries.
type ScheduledBuilder struct {
	ID           string
	Description  string
	Kind         model.TransactionKind
	Value        float64
	Currency     model.Currency
	ScheduleKind model.Scheduled
	StartDate    time.Time
	EndDate      time.Time
}

// NewScheduled creates a ScheduledBuilder with sensible defaults.
func NewScheduled() *ScheduledBuilder {
	return &ScheduledBuilder{
		ID:           MakeID(),
		Description:  MakeName("Scheduled"),
		Kind:         model.KindContribution,
		Value:        100,
		Currency:     model.BRL,
		ScheduleKind: model.ScheduledMonthly,
		StartDate:    time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC),
	}
}

// WithScheduleKind sets a custom recurrence kind.
func (b *ScheduledBuilder) WithScheduleKind(kind model.Scheduled) *ScheduledBuilder {
	b.ScheduleKind = kind
	return b
}

// WithRange sets the recurrence range from YYYY-MM-DD strings.
func (b *ScheduledBuilder) WithRange(start, end string) *ScheduledBuilder {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		panic(err)
	}
	b.StartDate = startDate
	b.EndDate = endDate
	return b
}

// Build creates the recurring entry in the database and returns it.
func (b *ScheduledBuilder) Build(t *testing.T, db *sql.DB) model.ScheduledTransaction {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO scheduled_transaction (id, description, kind, value, currency, schedule_kind, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Description, b.Kind, b.Value, b.Currency, b.ScheduleKind,
		b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Failed to create test scheduled transaction: %v", err)
	}

	return model.ScheduledTransaction{
		ID:           b.ID,
		Description:  b.Description,
		Kind:         b.Kind,
		Value:        b.Value,
		Currency:     b.Currency,
		ScheduleKind: b.ScheduleKind,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
	}
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
type PortfolioBuilder struct {
	ID               string
	Name             string
	Currency         model.Currency
	ClassificationID string
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:       MakeID(),
		Name:     MakeName("Portfolio"),
		Currency: model.BRL,
	}
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithCurrency sets a custom currency.
func (b *PortfolioBuilder) WithCurrency(currency model.Currency) *PortfolioBuilder {
	b.Currency = currency
	return b
}

// WithClassification ties the portfolio to a classification.
func (b *PortfolioBuilder) WithClassification(classificationID string) *PortfolioBuilder {
	b.ClassificationID = classificationID
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	var classificationID any
	if b.ClassificationID != "" {
		classificationID = b.ClassificationID
	}

	_, err := db.Exec(`
		INSERT INTO portfolio (id, name, currency, classification_id)
		VALUES (?, ?, ?, ?)
	`, b.ID, b.Name, b.Currency, classificationID)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:               b.ID,
		Name:             b.Name,
		Currency:         b.Currency,
		ClassificationID: b.ClassificationID,
	}
}

// AllocationBuilder provides a fluent interface for creating test allocations.
type AllocationBuilder struct {
	ID           string
	PortfolioID  string
	Ticker       string
	Quantity     float64
	InitialValue float64
	PercPlanned  float64
}

// NewAllocation creates an AllocationBuilder tied to a portfolio.
func NewAllocation(portfolioID, ticker string) *AllocationBuilder {
	return &AllocationBuilder{
		ID:           MakeID(),
		PortfolioID:  portfolioID,
		Ticker:       ticker,
		Quantity:     10,
		InitialValue: 1000,
	}
}

// WithQuantity sets a custom quantity.
func (b *AllocationBuilder) WithQuantity(quantity float64) *AllocationBuilder {
	b.Quantity = quantity
	return b
}

// WithInitialValue sets a custom cost basis.
func (b *AllocationBuilder) WithInitialValue(value float64) *AllocationBuilder {
	b.InitialValue = value
	return b
}

// WithPercPlanned sets a custom planned percentage.
func (b *AllocationBuilder) WithPercPlanned(perc float64) *AllocationBuilder {
	b.PercPlanned = perc
	return b
}

// Build creates the allocation in the database and returns it.
func (b *AllocationBuilder) Build(t *testing.T, db *sql.DB) model.AllocationRecord {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO allocation (id, portfolio_id, ticker, quantity, initial_value, perc_planned)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.PortfolioID, b.Ticker, b.Quantity, b.InitialValue, b.PercPlanned)
	if err != nil {
		t.Fatalf("Failed to create test allocation: %v", err)
	}

	return model.AllocationRecord{
		ID:           b.ID,
		PortfolioID:  b.PortfolioID,
		Ticker:       b.Ticker,
		Quantity:     b.Quantity,
		InitialValue: b.InitialValue,
		PercPlanned:  b.PercPlanned,
	}
}

// InsertQuote stores a quote row directly, bypassing the provider.
func InsertQuote(t *testing.T, db *sql.DB, q model.Quote) {
	t.Helper()

	lastUpdate := q.LastUpdate
	if lastUpdate.IsZero() {
		lastUpdate = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}

	_, err := db.Exec(`
		INSERT INTO quote (symbol, price, currency, open, high, low, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, q.Symbol, q.Price, q.Currency, q.Open, q.High, q.Low, lastUpdate.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test quote: %v", err)
	}
}

// InsertRate stores an exchange-rate row directly.
func InsertRate(t *testing.T, db *sql.DB, r model.ExchangeRate) {
	t.Helper()

	updatedAt := r.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}

	_, err := db.Exec(`
		INSERT INTO exchange_rate (from_currency, to_currency, year, month, rate, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.From, r.To, r.Year, r.Month, r.Rate, updatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test exchange rate: %v", err)
	}
}

// InsertProfitability stores a profitability cell directly.
func InsertProfitability(t *testing.T, db *sql.DB, r model.ProfitabilityRecord) {
	t.Helper()

	id := r.ID
	if id == "" {
		id = MakeID()
	}

	_, err := db.Exec(`
		INSERT INTO profitability (id, year, classification_id, month, value, currency)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, r.Year, r.ClassificationID, r.Month, r.Value, r.Currency)
	if err != nil {
		t.Fatalf("Failed to create test profitability record: %v", err)
	}
}
