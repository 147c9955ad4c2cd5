package model

import "time"

// TransactionKind identifies what a ledger entry represents. The set is
// closed; aggregation code switches exhaustively over it.
type TransactionKind string

const (
	KindContribution TransactionKind = "CONTRIBUTION"
	KindBuy          TransactionKind = "BUY"
	KindSell         TransactionKind = "SELL"
	KindWithdrawal   TransactionKind = "WITHDRAWAL"
	KindDividends    TransactionKind = "DIVIDENDS"
	KindIOEReturn    TransactionKind = "IOE_RETURN"
	KindRentReturn   TransactionKind = "RENT_RETURN"
)

// TransactionKinds lists every known transaction kind.
var TransactionKinds = []TransactionKind{
	KindContribution,
	KindBuy,
	KindSell,
	KindWithdrawal,
	KindDividends,
	KindIOEReturn,
	KindRentReturn,
}

// Valid reports whether k is one of the known transaction kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindContribution, KindBuy, KindSell, KindWithdrawal,
		KindDividends, KindIOEReturn, KindRentReturn:
		return true
	}
	return false
}

// Transaction represents a ledger entry. Only entries with Done set feed the
// profitability aggregation; pending entries are projections.
type Transaction struct {
	ID               string          `json:"id"`
	AssetID          string          `json:"assetId"`
	ClassificationID string          `json:"classificationId"`
	Kind             TransactionKind `json:"kind"`
	Value            float64         `json:"value"`
	Currency         Currency        `json:"currency"`
	Date             time.Time       `json:"date"`
	Done             bool            `json:"done"`
	CreatedAt        time.Time       `json:"createdAt,omitempty"`
}

// TransactionFilter narrows transaction queries.
type TransactionFilter struct {
	Year     int
	DoneOnly bool
}
