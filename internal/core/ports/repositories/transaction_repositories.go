package repositories

import (
	"context"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionListFilters narrows a transaction listing by optional criteria.
type TransactionListFilters struct {
	AccountID  *string
	CategoryID *string
	Type       *domain.TransactionType
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of a user's transactions using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, userID string, filters TransactionListFilters, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SumExpensesByCategory sums expense amounts per category for a user within a date range.
	SumExpensesByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and applies the given balance
	// changes to the affected accounts within a single database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransaction updates an existing transaction and applies the given
	// balance changes atomically with the row update.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteTransaction removes a transaction and applies the given balance
	// changes atomically with the row delete.
	DeleteTransaction(ctx context.Context, userID string, transactionID string, balanceChanges map[string]decimal.Decimal) error

	// SaveTransactionWithScheduleUpdate persists a new transaction, applies the
	// given balance changes, and rewrites the planned payment that produced it,
	// all within a single database transaction.
	SaveTransactionWithScheduleUpdate(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, payment domain.PlannedPayment) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
// This is a facade for clients that need access to all operations
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
