package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyflow/penny_tracker_app/internal/apperrors"
	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	portsrepo "github.com/pennyflow/penny_tracker_app/internal/core/ports/repositories"
	"github.com/pennyflow/penny_tracker_app/internal/models"
	"github.com/pennyflow/penny_tracker_app/internal/utils/mapping"
)

const plannedPaymentColumns = `planned_payment_id, user_id, name, type, amount, source_account_id, destination_account_id, category_id, frequency, recurrence_type, weekly_days, monthly_interval, start_date, last_executed_at, next_execution_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxPlannedPaymentRepository struct {
	BaseRepository
}

// newPgxPlannedPaymentRepository creates a new repository for planned payment data.
func newPgxPlannedPaymentRepository(pool *pgxpool.Pool) *PgxPlannedPaymentRepository {
	return &PgxPlannedPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPlannedPaymentRepository implements the planned payment facade
var _ portsrepo.PlannedPaymentRepositoryFacade = (*PgxPlannedPaymentRepository)(nil)

func scanPlannedPayment(row pgx.Row) (*models.PlannedPayment, error) {
	var m models.PlannedPayment
	err := row.Scan(
		&m.PlannedPaymentID,
		&m.UserID,
		&m.Name,
		&m.Type,
		&m.Amount,
		&m.SourceAccountID,
		&m.DestinationAccountID,
		&m.CategoryID,
		&m.Frequency,
		&m.RecurrenceType,
		&m.WeeklyDays,
		&m.MonthlyInterval,
		&m.StartDate,
		&m.LastExecutedAt,
		&m.NextExecutionDate,
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

// SavePlannedPayment inserts a new planned payment.
func (r *PgxPlannedPaymentRepository) SavePlannedPayment(ctx context.Context, payment domain.PlannedPayment) error {
	m := mapping.ToModelPlannedPayment(payment)

	query := `
		INSERT INTO planned_payments (` + plannedPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PlannedPaymentID,
		m.UserID,
		m.Name,
		m.Type,
		m.Amount,
		m.SourceAccountID,
		m.DestinationAccountID,
		m.CategoryID,
		m.Frequency,
		m.RecurrenceType,
		m.WeeklyDays,
		m.MonthlyInterval,
		m.StartDate,
		m.LastExecutedAt,
		m.NextExecutionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: planned payment with ID %s already exists", apperrors.ErrDuplicate, m.PlannedPaymentID)
		}
		return fmt.Errorf("failed to save planned payment %s: %w", m.PlannedPaymentID, err)
	}
	return nil
}

// FindPlannedPaymentByID retrieves a planned payment by its ID, scoped to the owning user.
func (r *PgxPlannedPaymentRepository) FindPlannedPaymentByID(ctx context.Context, userID string, plannedPaymentID string) (*domain.PlannedPayment, error) {
	query := `
		SELECT ` + plannedPaymentColumns + `
		FROM planned_payments
		WHERE planned_payment_id = $1 AND user_id = $2;
	`
	m, err := scanPlannedPayment(r.Pool.QueryRow(ctx, query, plannedPaymentID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find planned payment by ID %s: %w", plannedPaymentID, err)
	}

	payment := mapping.ToDomainPlannedPayment(*m)
	return &payment, nil
}

// ListPlannedPayments retrieves the planned payments owned by a user.
// Payments with a pending next execution sort first.
func (r *PgxPlannedPaymentRepository) ListPlannedPayments(ctx context.Context, userID string) ([]domain.PlannedPayment, error) {
	query := `
		SELECT ` + plannedPaymentColumns + `
		FROM planned_payments
		WHERE user_id = $1
		ORDER BY next_execution_date ASC NULLS LAST, name;
	`
	return r.queryPlannedPayments(ctx, query, userID)
}

// ListDuePlannedPayments retrieves planned payments whose next execution date
// is on or before asOf.
func (r *PgxPlannedPaymentRepository) ListDuePlannedPayments(ctx context.Context, userID string, asOf time.Time) ([]domain.PlannedPayment, error) {
	query := `
		SELECT ` + plannedPaymentColumns + `
		FROM planned_payments
		WHERE user_id = $1 AND next_execution_date IS NOT NULL AND next_execution_date <= $2
		ORDER BY next_execution_date;
	`
	return r.queryPlannedPayments(ctx, query, userID, asOf)
}

func (r *PgxPlannedPaymentRepository) queryPlannedPayments(ctx context.Context, query string, args ...any) ([]domain.PlannedPayment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query planned payments: %w", err)
	}
	defer rows.Close()

	paymentModels := []models.PlannedPayment{}
	for rows.Next() {
		m, err := scanPlannedPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planned payment row: %w", err)
		}
		paymentModels = append(paymentModels, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating planned payment rows: %w", rows.Err())
	}

	return mapping.ToDomainPlannedPaymentSlice(paymentModels), nil
}

// updatePlannedPaymentRow rewrites a planned payment row. It runs against the
// pool or an open transaction, so schedule advances can share a database
// transaction with the ledger write that triggered them.
func updatePlannedPaymentRow(ctx context.Context, db pgxExecer, m models.PlannedPayment) error {
	query := `
		UPDATE planned_payments
		SET name = $3, type = $4, amount = $5, source_account_id = $6, destination_account_id = $7,
			category_id = $8, frequency = $9, recurrence_type = $10, weekly_days = $11, monthly_interval = $12,
			start_date = $13, last_executed_at = $14, next_execution_date = $15, last_updated_at = $16, last_updated_by = $17
		WHERE planned_payment_id = $1 AND user_id = $2;
	`
	cmdTag, err := db.Exec(ctx, query,
		m.PlannedPaymentID,
		m.UserID,
		m.Name,
		m.Type,
		m.Amount,
		m.SourceAccountID,
		m.DestinationAccountID,
		m.CategoryID,
		m.Frequency,
		m.RecurrenceType,
		m.WeeklyDays,
		m.MonthlyInterval,
		m.StartDate,
		m.LastExecutedAt,
		m.NextExecutionDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update planned payment %s: %w", m.PlannedPaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePlannedPayment rewrites a planned payment's details and schedule state.
func (r *PgxPlannedPaymentRepository) UpdatePlannedPayment(ctx context.Context, payment domain.PlannedPayment) error {
	return updatePlannedPaymentRow(ctx, r.Pool, mapping.ToModelPlannedPayment(payment))
}

// DeletePlannedPayment removes a planned payment.
func (r *PgxPlannedPaymentRepository) DeletePlannedPayment(ctx context.Context, userID string, plannedPaymentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM planned_payments WHERE planned_payment_id = $1 AND user_id = $2;`, plannedPaymentID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete planned payment %s: %w", plannedPaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
