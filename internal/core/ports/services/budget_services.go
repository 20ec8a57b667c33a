package services

import (
	"context"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
)

// BudgetReaderSvc defines read operations for budget data
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a specific budget by its ID.
	GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error)

	// ListBudgetProgress retrieves a user's budgets for a month with the spent
	// amount per category alongside each limit.
	ListBudgetProgress(ctx context.Context, userID string, month time.Time) ([]domain.BudgetProgress, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// CreateBudget persists a new budget for a category and month.
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)

	// UpdateBudget updates an existing budget's limit.
	UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, userID string, budgetID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces
// This is a facade for clients that need access to all operations
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
