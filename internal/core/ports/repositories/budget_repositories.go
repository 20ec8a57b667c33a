package repositories

import (
	"context"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget by its unique identifier.
	FindBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error)

	// FindBudgetByCategoryMonth retrieves the budget for a category and month, if any.
	FindBudgetByCategoryMonth(ctx context.Context, userID string, categoryID string, month time.Time) (*domain.Budget, error)

	// ListBudgetsByMonth retrieves all budgets a user has defined for a month.
	ListBudgetsByMonth(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget's limit.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, userID string, budgetID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
// This is a facade for clients that need access to all operations
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
