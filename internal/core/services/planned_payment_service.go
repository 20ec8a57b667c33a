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
	portssvc "github.com/pennyflow/penny_tracker_app/internal/core/ports/services"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
	"github.com/pennyflow/penny_tracker_app/internal/middleware"
	"github.com/pennyflow/penny_tracker_app/internal/utils/recurrence"
)

type PlannedPaymentService struct {
	plannedPaymentRepo portsrepo.PlannedPaymentRepositoryFacade
	transactionSvc     portssvc.TransactionWriterSvc
}

func NewPlannedPaymentService(
	plannedPaymentRepo portsrepo.PlannedPaymentRepositoryFacade,
	transactionSvc portssvc.TransactionWriterSvc,
) *PlannedPaymentService {
	return &PlannedPaymentService{
		plannedPaymentRepo: plannedPaymentRepo,
		transactionSvc:     transactionSvc,
	}
}

// refreshSchedule recomputes the derived next execution date in place. An
// unschedulable or unknown recurrence configuration clears the date and logs a
// warning instead of failing the triggering write, so stored rows with legacy
// recurrence types stay writable.
func refreshSchedule(ctx context.Context, p *domain.PlannedPayment) {
	logger := middleware.GetLoggerFromCtx(ctx)

	next, err := recurrence.NextExecutionDate(
		p.Frequency, p.RecurrenceType,
		p.StartDate, p.StartDate,
		p.WeeklyDays, p.MonthlyInterval,
		p.LastExecutedAt,
	)
	if err != nil {
		logger.Warn("Planned payment has no computable next occurrence",
			slog.String("planned_payment_id", p.PlannedPaymentID),
			slog.String("reason", err.Error()))
		p.NextExecutionDate = nil
		return
	}

	p.NextExecutionDate = next
}

func validateRecurrenceConfig(p domain.PlannedPayment) error {
	if p.Amount.IsNegative() || p.Amount.IsZero() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if p.Frequency == domain.OneTime {
		return nil
	}
	if p.Frequency != domain.Recurrent {
		return fmt.Errorf("%w: unknown frequency %q", apperrors.ErrValidation, p.Frequency)
	}
	switch p.RecurrenceType {
	case domain.Daily, domain.Monthly, domain.Yearly:
		return nil
	case domain.Weekly:
		for _, d := range p.WeeklyDays {
			if d < 0 || d > 6 {
				return fmt.Errorf("%w: weekday index %d out of range", apperrors.ErrValidation, d)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown recurrence type %q", apperrors.ErrValidation, p.RecurrenceType)
	}
}

// CreatePlannedPayment persists a new planned payment with its next execution
// date computed from the recurrence configuration.
func (s *PlannedPaymentService) CreatePlannedPayment(ctx context.Context, userID string, req dto.CreatePlannedPaymentRequest) (*domain.PlannedPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	payment := domain.PlannedPayment{
		PlannedPaymentID:     uuid.NewString(),
		UserID:               userID,
		Name:                 req.Name,
		Type:                 req.Type,
		Amount:               req.Amount,
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		CategoryID:           req.CategoryID,
		Frequency:            req.Frequency,
		RecurrenceType:       req.RecurrenceType,
		WeeklyDays:           req.WeeklyDays,
		MonthlyInterval:      req.MonthlyInterval,
		StartDate:            req.StartDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := validateRecurrenceConfig(payment); err != nil {
		return nil, err
	}
	refreshSchedule(ctx, &payment)

	if err := s.plannedPaymentRepo.SavePlannedPayment(ctx, payment); err != nil {
		logger.Error("Failed to save planned payment in repository", slog.String("error", err.Error()), slog.String("planned_payment_id", payment.PlannedPaymentID))
		return nil, err
	}

	logger.Info("Planned payment created", slog.String("planned_payment_id", payment.PlannedPaymentID))
	return &payment, nil
}

// UpdatePlannedPayment applies the requested changes and recomputes the next
// execution date, since any recurrence field change can move it.
func (s *PlannedPaymentService) UpdatePlannedPayment(ctx context.Context, userID string, plannedPaymentID string, req dto.UpdatePlannedPaymentRequest) (*domain.PlannedPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.plannedPaymentRepo.FindPlannedPaymentByID(ctx, userID, plannedPaymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find planned payment for update", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
		}
		return nil, err
	}

	if req.Name != nil {
		payment.Name = *req.Name
	}
	if req.Type != nil {
		payment.Type = *req.Type
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.SourceAccountID != nil {
		payment.SourceAccountID = req.SourceAccountID
	}
	if req.DestinationAccountID != nil {
		payment.DestinationAccountID = req.DestinationAccountID
	}
	if req.CategoryID != nil {
		payment.CategoryID = req.CategoryID
	}
	if req.Frequency != nil {
		payment.Frequency = *req.Frequency
	}
	if req.RecurrenceType != nil {
		payment.RecurrenceType = *req.RecurrenceType
	}
	if req.WeeklyDays != nil {
		payment.WeeklyDays = req.WeeklyDays
	}
	if req.MonthlyInterval != nil {
		payment.MonthlyInterval = *req.MonthlyInterval
	}
	if req.StartDate != nil {
		payment.StartDate = *req.StartDate
	}
	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = userID

	if err := validateRecurrenceConfig(*payment); err != nil {
		return nil, err
	}
	refreshSchedule(ctx, payment)

	if err := s.plannedPaymentRepo.UpdatePlannedPayment(ctx, *payment); err != nil {
		logger.Error("Failed to update planned payment in repository", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
		return nil, err
	}

	logger.Info("Planned payment updated", slog.String("planned_payment_id", plannedPaymentID))
	return payment, nil
}

func (s *PlannedPaymentService) GetPlannedPaymentByID(ctx context.Context, userID string, plannedPaymentID string) (*domain.PlannedPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	payment, err := s.plannedPaymentRepo.FindPlannedPaymentByID(ctx, userID, plannedPaymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find planned payment by ID in repository", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
		}
		return nil, err
	}
	return payment, nil
}

func (s *PlannedPaymentService) ListPlannedPayments(ctx context.Context, userID string) ([]domain.PlannedPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	payments, err := s.plannedPaymentRepo.ListPlannedPayments(ctx, userID)
	if err != nil {
		logger.Error("Failed to list planned payments from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list planned payments: %w", err)
	}
	if payments == nil {
		return []domain.PlannedPayment{}, nil
	}
	return payments, nil
}

// ListDuePlannedPayments retrieves the payments whose next execution date is
// on or before asOf, soonest first.
func (s *PlannedPaymentService) ListDuePlannedPayments(ctx context.Context, userID string, asOf time.Time) ([]domain.PlannedPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	payments, err := s.plannedPaymentRepo.ListDuePlannedPayments(ctx, userID, asOf)
	if err != nil {
		logger.Error("Failed to list due planned payments from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list due planned payments: %w", err)
	}
	if payments == nil {
		return []domain.PlannedPayment{}, nil
	}
	return payments, nil
}

// PreviewUpcomingOccurrences projects the next count occurrences of a planned
// payment. A payment with an unusable recurrence configuration previews as
// empty rather than erroring, matching the dashboard behavior.
func (s *PlannedPaymentService) PreviewUpcomingOccurrences(ctx context.Context, userID string, plannedPaymentID string, count int) ([]time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.plannedPaymentRepo.FindPlannedPaymentByID(ctx, userID, plannedPaymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find planned payment for preview", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
		}
		return nil, err
	}

	occurrences, err := recurrence.Upcoming(*payment, time.Now(), count)
	if err != nil {
		if errors.Is(err, recurrence.ErrUnschedulable) || errors.Is(err, recurrence.ErrUnknownRecurrence) {
			logger.Warn("Planned payment recurrence cannot be previewed",
				slog.String("planned_payment_id", plannedPaymentID))
			return []time.Time{}, nil
		}
		return nil, err
	}
	if occurrences == nil {
		occurrences = []time.Time{}
	}
	return occurrences, nil
}

func (s *PlannedPaymentService) DeletePlannedPayment(ctx context.Context, userID string, plannedPaymentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.plannedPaymentRepo.DeletePlannedPayment(ctx, userID, plannedPaymentID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete planned payment in repository", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
		}
		return err
	}
	logger.Info("Planned payment deleted", slog.String("planned_payment_id", plannedPaymentID))
	return nil
}

// ExecutePlannedPayment records the payment as a real ledger transaction,
// stamps the execution time, and advances the schedule. The ledger write and
// the schedule update land in one database transaction, so a failed execution
// never leaves a booked transaction behind for a retry to double up on.
func (s *PlannedPaymentService) ExecutePlannedPayment(ctx context.Context, userID string, plannedPaymentID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.plannedPaymentRepo.FindPlannedPaymentByID(ctx, userID, plannedPaymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find planned payment for execution", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
		}
		return nil, err
	}

	if payment.Frequency == domain.OneTime && payment.LastExecutedAt != nil {
		return nil, fmt.Errorf("%w: one-time payment already executed", apperrors.ErrConflict)
	}

	executedAt := time.Now()
	txnDate := executedAt
	if payment.NextExecutionDate != nil {
		txnDate = *payment.NextExecutionDate
	}

	payment.LastExecutedAt = &executedAt
	payment.LastUpdatedAt = executedAt
	payment.LastUpdatedBy = userID
	refreshSchedule(ctx, payment)

	txn, err := s.transactionSvc.RecordPlannedExecution(ctx, userID, dto.CreateTransactionRequest{
		Type:                 payment.Type,
		Amount:               payment.Amount,
		SourceAccountID:      payment.SourceAccountID,
		DestinationAccountID: payment.DestinationAccountID,
		CategoryID:           payment.CategoryID,
		Notes:                payment.Name,
		TransactionDate:      txnDate,
	}, *payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record planned payment execution: %w", err)
	}

	logger.Info("Planned payment executed",
		slog.String("planned_payment_id", plannedPaymentID),
		slog.String("transaction_id", txn.TransactionID))
	return txn, nil
}
