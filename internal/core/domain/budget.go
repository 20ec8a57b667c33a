package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category spending limit for one calendar month.
// Month is normalized to the first day of the month at midnight UTC.
type Budget struct {
	BudgetID   string          `json:"budgetID"` // Primary Key (UUID)
	UserID     string          `json:"userID"`   // Owning user (NON-NULL)
	CategoryID string          `json:"categoryID"`
	Month      time.Time       `json:"month"`
	Limit      decimal.Decimal `json:"limit"` // Positive value
	AuditFields
}

// BudgetProgress pairs a budget with the amount spent so far in its month.
type BudgetProgress struct {
	Budget Budget          `json:"budget"`
	Spent  decimal.Decimal `json:"spent"`
}
