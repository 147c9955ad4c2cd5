package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmelo/patrimonio-backend/internal/api/request"
	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/repository"
)

// TransactionService handles ledger-related business logic operations.
type TransactionService struct {
	transactionRepo    *repository.TransactionRepository
	classificationRepo *repository.ClassificationRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	classificationRepo *repository.ClassificationRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo:    transactionRepo,
		classificationRepo: classificationRepo,
	}
}

// GetTransactions retrieves ledger entries, optionally narrowed to one year
// and to completed entries only.
func (s *TransactionService) GetTransactions(filter model.TransactionFilter) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(filter)
}

// GetTransaction retrieves a single ledger entry by its ID.
func (s *TransactionService) GetTransaction(id string) (model.Transaction, error) {
	return s.transactionRepo.GetTransactionOnID(id)
}

// CreateTransaction records a new ledger entry.
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.classificationRepo.GetOnID(req.ClassificationID); err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:               uuid.New().String(),
		AssetID:          req.AssetID,
		ClassificationID: req.ClassificationID,
		Kind:             model.TransactionKind(req.Kind),
		Value:            req.Value,
		Currency:         model.Currency(req.Currency),
		Date:             date,
		Done:             req.Done,
		CreatedAt:        time.Now(),
	}

	if err := s.transactionRepo.Create(*transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction applies the fields present on the request to an existing ledger entry.
func (s *TransactionService) UpdateTransaction(id string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransactionOnID(id)
	if err != nil {
		return nil, err
	}

	if req.AssetID != nil {
		transaction.AssetID = *req.AssetID
	}
	if req.ClassificationID != nil {
		if _, err := s.classificationRepo.GetOnID(*req.ClassificationID); err != nil {
			return nil, err
		}
		transaction.ClassificationID = *req.ClassificationID
	}
	if req.Kind != nil {
		transaction.Kind = model.TransactionKind(*req.Kind)
	}
	if req.Value != nil {
		transaction.Value = *req.Value
	}
	if req.Currency != nil {
		transaction.Currency = model.Currency(*req.Currency)
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = date
	}
	if req.Done != nil {
		transaction.Done = *req.Done
	}

	if err := s.transactionRepo.Update(transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &transaction, nil
}

// DeleteTransaction removes a ledger entry by its ID.
func (s *TransactionService) DeleteTransaction(id string) error {
	return s.transactionRepo.Delete(id)
}
