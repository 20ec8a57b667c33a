package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NetWorth summarizes a user's position across all active accounts.
type NetWorth struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Total       decimal.Decimal `json:"total"`
	AsOf        time.Time       `json:"asOf"`
}

// UpcomingPayment is one projected occurrence of a planned payment.
type UpcomingPayment struct {
	PlannedPaymentID string          `json:"plannedPaymentID"`
	Name             string          `json:"name"`
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	DueDate          time.Time       `json:"dueDate"`
}

// DashboardSummary is the aggregate payload behind the dashboard tiles.
type DashboardSummary struct {
	NetWorth         NetWorth          `json:"netWorth"`
	Accounts         []Account         `json:"accounts"`
	BudgetProgress   []BudgetProgress  `json:"budgetProgress"`
	UpcomingPayments []UpcomingPayment `json:"upcomingPayments"`
}
