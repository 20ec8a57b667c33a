package dto

import (
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget.
// Month accepts any date within the target month; it is normalized to the first day.
type CreateBudgetRequest struct {
	CategoryID string          `json:"categoryID" binding:"required"`
	Month      time.Time       `json:"month" binding:"required"`
	Limit      decimal.Decimal `json:"limit" binding:"required"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	Limit decimal.Decimal `json:"limit" binding:"required"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID   string          `json:"budgetID"`
	CategoryID string          `json:"categoryID"`
	Month      time.Time       `json:"month"`
	Limit      decimal.Decimal `json:"limit"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// BudgetProgressResponse pairs a budget with the amount spent against it.
type BudgetProgressResponse struct {
	BudgetResponse
	Spent decimal.Decimal `json:"spent"`
}

// ListBudgetProgressParams defines query parameters for listing budget progress.
type ListBudgetProgressParams struct {
	Month time.Time `form:"month" time_format:"2006-01-02"`
}

// ListBudgetProgressResponse wraps budget progress entries for a month.
type ListBudgetProgressResponse struct {
	Budgets []BudgetProgressResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:   b.BudgetID,
		CategoryID: b.CategoryID,
		Month:      b.Month,
		Limit:      b.Limit,
		CreatedAt:  b.CreatedAt,
	}
}

// ToBudgetProgressResponse converts a domain.BudgetProgress to its DTO.
func ToBudgetProgressResponse(bp *domain.BudgetProgress) BudgetProgressResponse {
	return BudgetProgressResponse{
		BudgetResponse: ToBudgetResponse(&bp.Budget),
		Spent:          bp.Spent,
	}
}

// ToBudgetProgressResponses converts a slice of domain.BudgetProgress to DTOs.
func ToBudgetProgressResponses(progress []domain.BudgetProgress) []BudgetProgressResponse {
	responses := make([]BudgetProgressResponse, len(progress))
	for i, bp := range progress {
		responses[i] = ToBudgetProgressResponse(&bp)
	}
	return responses
}
