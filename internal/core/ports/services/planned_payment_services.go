package services

import (
	"context"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
)

// PlannedPaymentReaderSvc defines read operations for planned payment data
type PlannedPaymentReaderSvc interface {
	// GetPlannedPaymentByID retrieves a specific planned payment by its ID.
	GetPlannedPaymentByID(ctx context.Context, userID string, plannedPaymentID string) (*domain.PlannedPayment, error)

	// ListPlannedPayments retrieves all planned payments owned by a user.
	ListPlannedPayments(ctx context.Context, userID string) ([]domain.PlannedPayment, error)

	// ListDuePlannedPayments retrieves the payments whose next execution date
	// is on or before asOf.
	ListDuePlannedPayments(ctx context.Context, userID string, asOf time.Time) ([]domain.PlannedPayment, error)

	// PreviewUpcomingOccurrences projects the next occurrences of a planned
	// payment without persisting anything.
	PreviewUpcomingOccurrences(ctx context.Context, userID string, plannedPaymentID string, count int) ([]time.Time, error)
}

// PlannedPaymentWriterSvc defines write operations for planned payment data
type PlannedPaymentWriterSvc interface {
	// CreatePlannedPayment persists a new planned payment with its next execution date computed.
	CreatePlannedPayment(ctx context.Context, userID string, req dto.CreatePlannedPaymentRequest) (*domain.PlannedPayment, error)

	// UpdatePlannedPayment updates a planned payment and recomputes its next execution date.
	UpdatePlannedPayment(ctx context.Context, userID string, plannedPaymentID string, req dto.UpdatePlannedPaymentRequest) (*domain.PlannedPayment, error)

	// DeletePlannedPayment removes a planned payment.
	DeletePlannedPayment(ctx context.Context, userID string, plannedPaymentID string) error

	// ExecutePlannedPayment records the payment as a ledger transaction, stamps
	// the execution time, and advances the schedule.
	ExecutePlannedPayment(ctx context.Context, userID string, plannedPaymentID string) (*domain.Transaction, error)
}

// PlannedPaymentSvcFacade combines all planned-payment service interfaces
// This is a facade for clients that need access to all operations
type PlannedPaymentSvcFacade interface {
	PlannedPaymentReaderSvc
	PlannedPaymentWriterSvc
}
