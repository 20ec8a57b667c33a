package services

import (
	"context"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a specific category by its ID.
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories owned by a user.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category.
	DeleteCategory(ctx context.Context, userID string, categoryID string) error

	// SeedDefaultCategories creates the configured starter categories for a
	// user that has none yet.
	SeedDefaultCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategorySvcFacade combines all category-related service interfaces
// This is a facade for clients that need access to all operations
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
