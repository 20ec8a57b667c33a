package services

import (
	"context"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction by its ID.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of a user's transactions.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction and adjusts account balances.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction rewrites a transaction, reversing its old balance
	// effect and applying the new one in a single step.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance effect.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error

	// RecordPlannedExecution persists the ledger transaction produced by a
	// planned payment and rewrites the payment's schedule state atomically
	// with the insert.
	RecordPlannedExecution(ctx context.Context, userID string, req dto.CreateTransactionRequest, payment domain.PlannedPayment) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
// This is a facade for clients that need access to all operations
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
