package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pennyflow/penny_tracker_app/internal/apperrors"
	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	portsrepo "github.com/pennyflow/penny_tracker_app/internal/core/ports/repositories"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
	"github.com/pennyflow/penny_tracker_app/internal/middleware"
	"github.com/pennyflow/penny_tracker_app/internal/utils/accounting"
	"github.com/pennyflow/penny_tracker_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type TransactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
}

func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

// validateTransaction checks the account references a transaction needs for
// its type and verifies every referenced account and category belongs to the
// user and is usable.
func (s *TransactionService) validateTransaction(ctx context.Context, userID string, txn domain.Transaction) error {
	if txn.Amount.IsNegative() || txn.Amount.IsZero() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	var required []*string
	switch txn.Type {
	case domain.Income:
		required = []*string{txn.DestinationAccountID}
	case domain.Expense:
		required = []*string{txn.SourceAccountID}
	case domain.Transfer:
		required = []*string{txn.SourceAccountID, txn.DestinationAccountID}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txn.Type)
	}
	for _, ref := range required {
		if ref == nil || *ref == "" {
			return fmt.Errorf("%w: transaction type %s requires account references", apperrors.ErrValidation, txn.Type)
		}
	}
	if txn.Type == domain.Transfer && *txn.SourceAccountID == *txn.DestinationAccountID {
		return fmt.Errorf("%w: transfer source and destination must differ", apperrors.ErrValidation)
	}

	accountIDs := make([]string, 0, 2)
	for _, ref := range []*string{txn.SourceAccountID, txn.DestinationAccountID} {
		if ref != nil && *ref != "" {
			accountIDs = append(accountIDs, *ref)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, userID, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}
	for _, id := range accountIDs {
		account, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	if txn.CategoryID != nil && *txn.CategoryID != "" {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, userID, *txn.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, *txn.CategoryID)
			}
			return fmt.Errorf("failed to fetch category for validation: %w", err)
		}
	}

	return nil
}

// newTransactionFromRequest builds and validates the domain transaction for a
// create request and computes the balance deltas it implies.
func (s *TransactionService) newTransactionFromRequest(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, map[string]decimal.Decimal, error) {
	now := time.Now()
	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		UserID:               userID,
		Type:                 req.Type,
		Amount:               req.Amount,
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		CategoryID:           req.CategoryID,
		Notes:                req.Notes,
		TransactionDate:      req.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.validateTransaction(ctx, userID, txn); err != nil {
		return nil, nil, err
	}

	balanceChanges, err := accounting.BalanceChanges(nil, &txn)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return &txn, balanceChanges, nil
}

// CreateTransaction validates and persists a new transaction. The balance
// deltas it implies are applied to the affected accounts in the same database
// transaction as the insert.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, balanceChanges, err := s.newTransactionFromRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.SaveTransaction(ctx, *txn, balanceChanges); err != nil {
		logger.Error("Failed to save transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("type", string(txn.Type)))
	return txn, nil
}

// RecordPlannedExecution persists the ledger transaction produced by a planned
// payment. The payment's schedule state is rewritten in the same database
// transaction as the insert, so a failure strands neither a booked transaction
// without its execution stamp nor the reverse.
func (s *TransactionService) RecordPlannedExecution(ctx context.Context, userID string, req dto.CreateTransactionRequest, payment domain.PlannedPayment) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, balanceChanges, err := s.newTransactionFromRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.SaveTransactionWithScheduleUpdate(ctx, *txn, balanceChanges, payment); err != nil {
		logger.Error("Failed to record planned payment execution", slog.String("error", err.Error()), slog.String("planned_payment_id", payment.PlannedPaymentID))
		return nil, err
	}

	logger.Info("Planned payment execution recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("planned_payment_id", payment.PlannedPaymentID))
	return txn, nil
}

// UpdateTransaction rewrites a transaction. Balance maintenance reverses the
// old version's effect and applies the new one in a single atomic step, so the
// rewrite is safe across amount, account, and type changes.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	oldTxn, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction for update", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	newTxn := *oldTxn
	newTxn.Type = req.Type
	newTxn.Amount = req.Amount
	newTxn.SourceAccountID = req.SourceAccountID
	newTxn.DestinationAccountID = req.DestinationAccountID
	newTxn.CategoryID = req.CategoryID
	newTxn.Notes = req.Notes
	newTxn.TransactionDate = req.TransactionDate
	newTxn.LastUpdatedAt = time.Now()
	newTxn.LastUpdatedBy = userID

	if err := s.validateTransaction(ctx, userID, newTxn); err != nil {
		return nil, err
	}

	balanceChanges, err := accounting.BalanceChanges(oldTxn, &newTxn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, newTxn, balanceChanges); err != nil {
		logger.Error("Failed to update transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &newTxn, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect on
// the affected accounts atomically with the delete.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	oldTxn, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction for delete", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return err
	}

	balanceChanges, err := accounting.BalanceChanges(oldTxn, nil)
	if err != nil {
		return fmt.Errorf("failed to compute balance reversal: %w", err)
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, userID, transactionID, balanceChanges); err != nil {
		logger.Error("Failed to delete transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *TransactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txn, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves a filtered, token-paginated page of transactions.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if params.NextToken != nil && *params.NextToken != "" {
		if _, _, err := pagination.DecodeToken(*params.NextToken); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}

	filters := portsrepo.TransactionListFilters{
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
	}
	if params.Type != nil && *params.Type != "" {
		txnType := domain.TransactionType(*params.Type)
		switch txnType {
		case domain.Income, domain.Expense, domain.Transfer:
			filters.Type = &txnType
		default:
			return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, *params.Type)
		}
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, userID, filters, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
