package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyflow/penny_tracker_app/internal/apperrors"
	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	portsrepo "github.com/pennyflow/penny_tracker_app/internal/core/ports/repositories"
	"github.com/pennyflow/penny_tracker_app/internal/models"
	"github.com/pennyflow/penny_tracker_app/internal/utils/mapping"
	"github.com/pennyflow/penny_tracker_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, type, amount, source_account_id, destination_account_id, category_id, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
// The account repository is needed to lock and adjust balances atomically
// with every ledger write.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements the transaction facade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Type,
		&m.Amount,
		&m.SourceAccountID,
		&m.DestinationAccountID,
		&m.CategoryID,
		&m.Notes,
		&m.TransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func balanceChangeAccountIDs(balanceChanges map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	return ids
}

// insertTransaction inserts a transaction row within the given transaction.
func insertTransaction(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Type,
		m.Amount,
		m.SourceAccountID,
		m.DestinationAccountID,
		m.CategoryID,
		m.Notes,
		m.TransactionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransaction persists a new transaction and applies the balance changes
// to the affected accounts in a single database transaction. Affected account
// rows are locked before the adjustment.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTransaction(ctx, tx, m); err != nil {
		return err
	}

	if err := r.applyBalanceChanges(ctx, tx, m.UserID, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveTransactionWithScheduleUpdate persists a transaction produced by a
// planned payment and rewrites the payment's schedule state in the same
// database transaction, so a committed ledger write always carries its
// execution stamp.
func (r *PgxTransactionRepository) SaveTransactionWithScheduleUpdate(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, payment domain.PlannedPayment) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTransaction(ctx, tx, m); err != nil {
		return err
	}

	if err := r.applyBalanceChanges(ctx, tx, m.UserID, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	if err := updatePlannedPaymentRow(ctx, tx, mapping.ToModelPlannedPayment(payment)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction rewrites a transaction row and applies the balance changes
// atomically with the row update.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET type = $3, amount = $4, source_account_id = $5, destination_account_id = $6,
			category_id = $7, notes = $8, transaction_date = $9, last_updated_at = $10, last_updated_by = $11
		WHERE transaction_id = $1 AND user_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Type,
		m.Amount,
		m.SourceAccountID,
		m.DestinationAccountID,
		m.CategoryID,
		m.Notes,
		m.TransactionDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, m.UserID, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a transaction row and applies the compensating
// balance changes atomically with the delete.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID string, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, userID, balanceChanges, time.Now()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// applyBalanceChanges locks the affected account rows and adjusts their
// current balances inside the given transaction.
func (r *PgxTransactionRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, userID string, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, userID, balanceChangeAccountIDs(balanceChanges)); err != nil {
		return fmt.Errorf("failed to lock accounts for balance update: %w", err)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return fmt.Errorf("failed to apply balance changes: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID, scoped to the owning user.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// ListTransactions retrieves a page of transactions ordered by transaction
// date descending, with creation time as the tiebreaker. Token-based
// pagination keeps pages stable under concurrent inserts.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filters portsrepo.TransactionListFilters, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)
	args := []any{userID}

	if filters.AccountID != nil {
		args = append(args, *filters.AccountID)
		p := strconv.Itoa(len(args))
		sb.WriteString(` AND (source_account_id = $` + p + ` OR destination_account_id = $` + p + `)`)
	}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		sb.WriteString(` AND category_id = $` + strconv.Itoa(len(args)))
	}
	if filters.Type != nil {
		args = append(args, string(*filters.Type))
		sb.WriteString(` AND type = $` + strconv.Itoa(len(args)))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		dateParam := strconv.Itoa(len(args) - 1)
		createdParam := strconv.Itoa(len(args))
		sb.WriteString(` AND (transaction_date, created_at) < ($` + dateParam + `, $` + createdParam + `)`)
	}

	args = append(args, limit+1)
	sb.WriteString(` ORDER BY transaction_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`)

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	transactionModels := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactionModels = append(transactionModels, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(transactionModels) > limit {
		transactionModels = transactionModels[:limit]
		last := transactionModels[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainTransactionSlice(transactionModels), newNextToken, nil
}

// SumExpensesByCategory sums categorized expense amounts within [from, to).
func (r *PgxTransactionRepository) SumExpensesByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT category_id, SUM(amount)
		FROM transactions
		WHERE user_id = $1 AND type = 'EXPENSE' AND category_id IS NOT NULL
			AND transaction_date >= $2 AND transaction_date < $3
		GROUP BY category_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses by category for user %s: %w", userID, err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var categoryID string
		var total decimal.Decimal
		if err := rows.Scan(&categoryID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense sum row: %w", err)
		}
		totals[categoryID] = total
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense sum rows: %w", rows.Err())
	}

	return totals, nil
}
