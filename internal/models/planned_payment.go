package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlannedPayment is the database representation of a payment template.
// WeeklyDays is stored as an integer array column; NextExecutionDate is
// derived state written back by the recurrence scheduler.
type PlannedPayment struct {
	PlannedPaymentID     string
	UserID               string
	Name                 string
	Type                 TransactionType
	Amount               decimal.Decimal
	SourceAccountID      *string
	DestinationAccountID *string
	CategoryID           *string
	Frequency            string
	RecurrenceType       *string
	WeeklyDays           []int32
	MonthlyInterval      *int32
	StartDate            time.Time
	LastExecutedAt       *time.Time
	NextExecutionDate    *time.Time
	AuditFields
}
