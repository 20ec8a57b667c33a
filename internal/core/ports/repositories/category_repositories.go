package repositories

import (
	"context"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories owned by a user.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// SaveCategories persists multiple categories in one call.
	SaveCategories(ctx context.Context, categories []domain.Category) error

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category.
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
// This is a facade for clients that need access to all operations
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
