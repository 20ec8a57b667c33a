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
)

type CategoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
	// defaultCategories are the starter category names seeded for new users.
	defaultCategories []string
}

func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, defaultCategories []string) *CategoryService {
	return &CategoryService{
		categoryRepo:      repo,
		defaultCategories: defaultCategories,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ParentCategoryID != nil && *req.ParentCategoryID != "" {
		parent, err := s.categoryRepo.FindCategoryByID(ctx, userID, *req.ParentCategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent category %s", apperrors.ErrNotFound, *req.ParentCategoryID)
			}
			return nil, err
		}
		// Only one level of nesting is supported.
		if parent.ParentCategoryID != nil {
			return nil, fmt.Errorf("%w: parent category is itself a subcategory", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:       uuid.NewString(),
		UserID:           userID,
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
		Icon:             req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category in repository", slog.String("error", err.Error()), slog.String("category_id", category.CategoryID))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find category by ID in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		logger.Error("Failed to list categories from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find category for update", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.ParentCategoryID != nil {
		if *req.ParentCategoryID == categoryID {
			return nil, fmt.Errorf("%w: category cannot be its own parent", apperrors.ErrValidation)
		}
		category.ParentCategoryID = req.ParentCategoryID
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}

	logger.Info("Category updated", slog.String("category_id", categoryID))
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.categoryRepo.DeleteCategory(ctx, userID, categoryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to delete category in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return err
	}
	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}

// SeedDefaultCategories creates the configured starter categories for a user.
// It is a no-op returning ErrConflict when the user already has categories, so
// repeated calls cannot duplicate the set.
func (s *CategoryService) SeedDefaultCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		logger.Error("Failed to check existing categories before seeding", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: user already has categories", apperrors.ErrConflict)
	}

	now := time.Now()
	categories := make([]domain.Category, len(s.defaultCategories))
	for i, name := range s.defaultCategories {
		categories[i] = domain.Category{
			CategoryID: uuid.NewString(),
			UserID:     userID,
			Name:       name,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.categoryRepo.SaveCategories(ctx, categories); err != nil {
		logger.Error("Failed to seed default categories", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Default categories seeded", slog.Int("count", len(categories)))
	return categories, nil
}
