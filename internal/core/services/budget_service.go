package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pennyflow/penny_tracker_app/internal/apperrors"
	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	portsrepo "github.com/pennyflow/penny_tracker_app/internal/core/ports/repositories"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
	"github.com/pennyflow/penny_tracker_app/internal/middleware"
	"github.com/shopspring/decimal"
)

type BudgetService struct {
	budgetRepo      portsrepo.BudgetRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
}

func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// normalizeMonth truncates a date to the first day of its month in UTC.
// Budgets are keyed by this normalized value.
func normalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CreateBudget persists a new budget for a category and month. Only one
// budget per category per month is allowed.
func (s *BudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Limit.IsNegative() || req.Limit.IsZero() {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}

	if _, err := s.categoryRepo.FindCategoryByID(ctx, userID, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, req.CategoryID)
		}
		return nil, err
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:   uuid.NewString(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Month:      normalizeMonth(req.Month),
		Limit:      req.Limit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save budget in repository", slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
		}
		return nil, err
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("category_id", budget.CategoryID))
	return &budget, nil
}

func (s *BudgetService) GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find budget by ID in repository", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	return budget, nil
}

// UpdateBudget replaces a budget's limit. Category and month are immutable;
// delete and recreate to move a budget.
func (s *BudgetService) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Limit.IsNegative() || req.Limit.IsZero() {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find budget for update", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		}
		return nil, err
	}

	budget.Limit = req.Limit
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget in repository", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	logger.Info("Budget updated", slog.String("budget_id", budgetID))
	return budget, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.budgetRepo.DeleteBudget(ctx, userID, budgetID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete budget in repository", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		}
		return err
	}
	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// ListBudgetProgress returns a user's budgets for a month with the expense
// total spent in each budgeted category. Spending is recomputed from the
// ledger on every call rather than maintained as a counter.
func (s *BudgetService) ListBudgetProgress(ctx context.Context, userID string, month time.Time) ([]domain.BudgetProgress, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	normalized := normalizeMonth(month)
	budgets, err := s.budgetRepo.ListBudgetsByMonth(ctx, userID, normalized)
	if err != nil {
		logger.Error("Failed to list budgets from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return []domain.BudgetProgress{}, nil
	}

	from := normalized
	to := normalized.AddDate(0, 1, 0)
	spentByCategory, err := s.transactionRepo.SumExpensesByCategory(ctx, userID, from, to)
	if err != nil {
		logger.Error("Failed to sum expenses by category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	progress := make([]domain.BudgetProgress, len(budgets))
	for i, b := range budgets {
		spent, ok := spentByCategory[b.CategoryID]
		if !ok {
			spent = decimal.Zero
		}
		progress[i] = domain.BudgetProgress{
			Budget: b,
			Spent:  spent,
		}
	}

	return progress, nil
}
