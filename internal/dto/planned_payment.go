package dto

import (
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlannedPaymentRequest defines the data needed to create a planned payment.
// Recurrence fields are only read when frequency is RECURRENT.
type CreatePlannedPaymentRequest struct {
	Name                 string                  `json:"name" binding:"required"`
	Type                 domain.TransactionType  `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Amount               decimal.Decimal         `json:"amount" binding:"required"`
	SourceAccountID      *string                 `json:"sourceAccountID"`
	DestinationAccountID *string                 `json:"destinationAccountID"`
	CategoryID           *string                 `json:"categoryID"`
	Frequency            domain.PaymentFrequency `json:"frequency" binding:"required,oneof=ONE_TIME RECURRENT"`
	RecurrenceType       domain.RecurrenceType   `json:"recurrenceType" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	WeeklyDays           []int                   `json:"weeklyDays" binding:"omitempty,dive,gte=0,lte=6"`
	MonthlyInterval      int                     `json:"monthlyInterval" binding:"omitempty,gte=1"`
	StartDate            time.Time               `json:"startDate" binding:"required"`
}

// UpdatePlannedPaymentRequest defines the data allowed for updating a planned payment.
type UpdatePlannedPaymentRequest struct {
	Name                 *string                  `json:"name"`
	Type                 *domain.TransactionType  `json:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	Amount               *decimal.Decimal         `json:"amount"`
	SourceAccountID      *string                  `json:"sourceAccountID"`
	DestinationAccountID *string                  `json:"destinationAccountID"`
	CategoryID           *string                  `json:"categoryID"`
	Frequency            *domain.PaymentFrequency `json:"frequency" binding:"omitempty,oneof=ONE_TIME RECURRENT"`
	RecurrenceType       *domain.RecurrenceType   `json:"recurrenceType" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	WeeklyDays           []int                    `json:"weeklyDays" binding:"omitempty,dive,gte=0,lte=6"`
	MonthlyInterval      *int                     `json:"monthlyInterval" binding:"omitempty,gte=1"`
	StartDate            *time.Time               `json:"startDate"`
}

// PlannedPaymentResponse defines the data returned for a planned payment.
type PlannedPaymentResponse struct {
	PlannedPaymentID     string                  `json:"plannedPaymentID"`
	Name                 string                  `json:"name"`
	Type                 domain.TransactionType  `json:"type"`
	Amount               decimal.Decimal         `json:"amount"`
	SourceAccountID      *string                 `json:"sourceAccountID,omitempty"`
	DestinationAccountID *string                 `json:"destinationAccountID,omitempty"`
	CategoryID           *string                 `json:"categoryID,omitempty"`
	Frequency            domain.PaymentFrequency `json:"frequency"`
	RecurrenceType       domain.RecurrenceType   `json:"recurrenceType,omitempty"`
	WeeklyDays           []int                   `json:"weeklyDays,omitempty"`
	MonthlyInterval      int                     `json:"monthlyInterval,omitempty"`
	StartDate            time.Time               `json:"startDate"`
	LastExecutedAt       *time.Time              `json:"lastExecutedAt,omitempty"`
	NextExecutionDate    *time.Time              `json:"nextExecutionDate,omitempty"`
	CreatedAt            time.Time               `json:"createdAt"`
}

// ListPlannedPaymentsParams defines query parameters for listing planned
// payments. With due set, only payments whose next execution date is on or
// before asOf (defaulting to now) are returned.
type ListPlannedPaymentsParams struct {
	Due  bool       `form:"due"`
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ListPlannedPaymentsResponse wraps the list of planned payments.
type ListPlannedPaymentsResponse struct {
	PlannedPayments []PlannedPaymentResponse `json:"plannedPayments"`
}

// UpcomingOccurrencesParams defines query parameters for the occurrence preview.
type UpcomingOccurrencesParams struct {
	Count int `form:"count,default=5" binding:"omitempty,gte=1,lte=24"`
}

// UpcomingOccurrencesResponse carries the projected occurrences of one planned payment.
type UpcomingOccurrencesResponse struct {
	PlannedPaymentID string      `json:"plannedPaymentID"`
	Occurrences      []time.Time `json:"occurrences"`
}

// ToPlannedPaymentResponse converts a domain.PlannedPayment to PlannedPaymentResponse DTO.
func ToPlannedPaymentResponse(p *domain.PlannedPayment) PlannedPaymentResponse {
	return PlannedPaymentResponse{
		PlannedPaymentID:     p.PlannedPaymentID,
		Name:                 p.Name,
		Type:                 p.Type,
		Amount:               p.Amount,
		SourceAccountID:      p.SourceAccountID,
		DestinationAccountID: p.DestinationAccountID,
		CategoryID:           p.CategoryID,
		Frequency:            p.Frequency,
		RecurrenceType:       p.RecurrenceType,
		WeeklyDays:           p.WeeklyDays,
		MonthlyInterval:      p.MonthlyInterval,
		StartDate:            p.StartDate,
		LastExecutedAt:       p.LastExecutedAt,
		NextExecutionDate:    p.NextExecutionDate,
		CreatedAt:            p.CreatedAt,
	}
}

// ToPlannedPaymentResponses converts a slice of domain.PlannedPayment to DTOs.
func ToPlannedPaymentResponses(payments []domain.PlannedPayment) []PlannedPaymentResponse {
	responses := make([]PlannedPaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToPlannedPaymentResponse(&p)
	}
	return responses
}
