package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pennyflow/penny_tracker_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories against a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		TransactionRepo:    newPgxTransactionRepository(dbPool, accountRepo),
		PlannedPaymentRepo: newPgxPlannedPaymentRepository(dbPool),
		CategoryRepo:       newPgxCategoryRepository(dbPool),
		BudgetRepo:         newPgxBudgetRepository(dbPool),
	}
}
