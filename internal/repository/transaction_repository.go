package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmelo/patrimonio-backend/internal/apperrors"
	"github.com/dmelo/patrimonio-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// ledger.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, asset_id, classification_id, kind, value, currency, date, done, created_at`

// GetTransactions retrieves ledger entries matching the filter, sorted by
// date ascending. A zero Year matches every year.
func (s *TransactionRepository) GetTransactions(filter model.TransactionFilter) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE 1=1
	`
	var args []any

	if filter.Year != 0 {
		query += ` AND date >= ? AND date <= ?`
		args = append(args, fmt.Sprintf("%04d-01-01", filter.Year), fmt.Sprintf("%04d-12-31", filter.Year))
	}
	if filter.DoneOnly {
		query += ` AND done = ?`
		args = append(args, 1)
	}
	query += ` ORDER BY date ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// DoneByYear retrieves the completed transactions of a year, the input of
// the profitability aggregation.
func (s *TransactionRepository) DoneByYear(year int) ([]model.Transaction, error) {
	return s.GetTransactions(model.TransactionFilter{Year: year, DoneOnly: true})
}

// GetTransactionOnID retrieves a single ledger entry by id.
func (s *TransactionRepository) GetTransactionOnID(id string) (model.Transaction, error) {
	row := s.db.QueryRow(`
		SELECT `+transactionColumns+`
		FROM "transaction"
		WHERE id = ?
	`, id)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// Create inserts a new ledger entry.
func (s *TransactionRepository) Create(t model.Transaction) error {
	_, err := s.db.Exec(`
		INSERT INTO "transaction" (id, asset_id, classification_id, kind, value, currency, date, done)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, nullable(t.AssetID), t.ClassificationID, t.Kind, t.Value, t.Currency, t.Date.Format("2006-01-02"), t.Done)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// Update rewrites an existing ledger entry.
func (s *TransactionRepository) Update(t model.Transaction) error {
	result, err := s.db.Exec(`
		UPDATE "transaction"
		SET asset_id = ?, classification_id = ?, kind = ?, value = ?, currency = ?, date = ?, done = ?
		WHERE id = ?
	`, nullable(t.AssetID), t.ClassificationID, t.Kind, t.Value, t.Currency, t.Date.Format("2006-01-02"), t.Done, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a ledger entry by id.
func (s *TransactionRepository) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var assetID sql.NullString
	var dateStr string
	var createdAt sql.NullString

	err := row.Scan(
		&t.ID,
		&assetID,
		&t.ClassificationID,
		&t.Kind,
		&t.Value,
		&t.Currency,
		&dateStr,
		&t.Done,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.AssetID = assetID.String
	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}
	if createdAt.Valid {
		if created, err := ParseTime(createdAt.String); err == nil {
			t.CreatedAt = created
		}
	}
	return t, nil
}

// nullable maps an empty string to SQL NULL so optional foreign keys stay
// unset instead of violating the constraint.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
