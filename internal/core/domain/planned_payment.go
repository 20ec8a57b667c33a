package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentFrequency indicates whether a planned payment fires once or repeats.
type PaymentFrequency string

const (
	OneTime   PaymentFrequency = "ONE_TIME"
	Recurrent PaymentFrequency = "RECURRENT"
)

// RecurrenceType describes how a recurrent planned payment repeats.
type RecurrenceType string

const (
	Daily   RecurrenceType = "DAILY"
	Weekly  RecurrenceType = "WEEKLY"
	Monthly RecurrenceType = "MONTHLY"
	Yearly  RecurrenceType = "YEARLY"
)

// PlannedPayment is a template for a future transaction.
//
// NextExecutionDate is derived state: it is recomputed from the recurrence
// configuration and LastExecutedAt on every create/update and never authored
// directly. A nil NextExecutionDate means the payment has no further
// scheduled occurrence (already fired one-time payment, or an unschedulable
// recurrence configuration).
type PlannedPayment struct {
	PlannedPaymentID     string           `json:"plannedPaymentID"` // Primary Key (UUID)
	UserID               string           `json:"userID"`           // Owning user (NON-NULL)
	Name                 string           `json:"name"`
	Type                 TransactionType  `json:"type"`
	Amount               decimal.Decimal  `json:"amount"` // Positive value
	SourceAccountID      *string          `json:"sourceAccountID,omitempty"`
	DestinationAccountID *string          `json:"destinationAccountID,omitempty"`
	CategoryID           *string          `json:"categoryID,omitempty"`
	Frequency            PaymentFrequency `json:"frequency"`
	RecurrenceType       RecurrenceType   `json:"recurrenceType,omitempty"` // Empty for one-time payments
	WeeklyDays           []int            `json:"weeklyDays,omitempty"`     // Weekday indices 0-6, 0 = Sunday
	MonthlyInterval      int              `json:"monthlyInterval,omitempty"`
	StartDate            time.Time        `json:"startDate"` // Scheduled date for one-time, anchor for recurrent
	LastExecutedAt       *time.Time       `json:"lastExecutedAt,omitempty"`
	NextExecutionDate    *time.Time       `json:"nextExecutionDate,omitempty"` // Derived, never authored
	AuditFields
}
