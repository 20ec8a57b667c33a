package dto

import (
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetWorthResponse defines the data returned for a net worth query.
type NetWorthResponse struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Total       decimal.Decimal `json:"total"`
	AsOf        time.Time       `json:"asOf"`
}

// UpcomingPaymentResponse defines a single upcoming planned payment occurrence.
type UpcomingPaymentResponse struct {
	PlannedPaymentID string                 `json:"plannedPaymentID"`
	Name             string                 `json:"name"`
	Type             domain.TransactionType `json:"type"`
	Amount           decimal.Decimal        `json:"amount"`
	DueDate          time.Time              `json:"dueDate"`
}

// DashboardResponse aggregates the dashboard summary for a user.
type DashboardResponse struct {
	NetWorth         NetWorthResponse          `json:"netWorth"`
	Accounts         []AccountResponse         `json:"accounts"`
	BudgetProgress   []BudgetProgressResponse  `json:"budgetProgress"`
	UpcomingPayments []UpcomingPaymentResponse `json:"upcomingPayments"`
}

// ToNetWorthResponse converts a domain.NetWorth to its DTO.
func ToNetWorthResponse(nw *domain.NetWorth) NetWorthResponse {
	return NetWorthResponse{
		Assets:      nw.Assets,
		Liabilities: nw.Liabilities,
		Total:       nw.Total,
		AsOf:        nw.AsOf,
	}
}

// ToDashboardResponse converts a domain.DashboardSummary to its DTO.
func ToDashboardResponse(s *domain.DashboardSummary) DashboardResponse {
	upcoming := make([]UpcomingPaymentResponse, len(s.UpcomingPayments))
	for i, up := range s.UpcomingPayments {
		upcoming[i] = UpcomingPaymentResponse{
			PlannedPaymentID: up.PlannedPaymentID,
			Name:             up.Name,
			Type:             up.Type,
			Amount:           up.Amount,
			DueDate:          up.DueDate,
		}
	}
	return DashboardResponse{
		NetWorth:         ToNetWorthResponse(&s.NetWorth),
		Accounts:         ToListAccountResponse(s.Accounts),
		BudgetProgress:   ToBudgetProgressResponses(s.BudgetProgress),
		UpcomingPayments: upcoming,
	}
}
