package repositories

import (
	"context"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
)

// PlannedPaymentReader defines read operations for planned payment data
type PlannedPaymentReader interface {
	// FindPlannedPaymentByID retrieves a specific planned payment by its unique identifier.
	FindPlannedPaymentByID(ctx context.Context, userID string, plannedPaymentID string) (*domain.PlannedPayment, error)

	// ListPlannedPayments retrieves all planned payments owned by a user.
	ListPlannedPayments(ctx context.Context, userID string) ([]domain.PlannedPayment, error)

	// ListDuePlannedPayments retrieves planned payments whose next execution date is on or before the given time.
	ListDuePlannedPayments(ctx context.Context, userID string, asOf time.Time) ([]domain.PlannedPayment, error)
}

// PlannedPaymentWriter defines write operations for planned payment data
type PlannedPaymentWriter interface {
	// SavePlannedPayment persists a new planned payment.
	SavePlannedPayment(ctx context.Context, payment domain.PlannedPayment) error

	// UpdatePlannedPayment updates an existing planned payment's details and schedule.
	UpdatePlannedPayment(ctx context.Context, payment domain.PlannedPayment) error

	// DeletePlannedPayment removes a planned payment.
	DeletePlannedPayment(ctx context.Context, userID string, plannedPaymentID string) error
}

// PlannedPaymentRepositoryFacade combines all planned-payment repository interfaces
// This is a facade for clients that need access to all operations
type PlannedPaymentRepositoryFacade interface {
	PlannedPaymentReader
	PlannedPaymentWriter
}
