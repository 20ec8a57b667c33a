package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the database representation of a monthly category budget.
type Budget struct {
	BudgetID    string
	UserID      string
	CategoryID  string
	Month       time.Time
	LimitAmount decimal.Decimal
	AuditFields
}
