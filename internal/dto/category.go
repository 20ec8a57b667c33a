package dto

import (
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name             string  `json:"name" binding:"required"`
	ParentCategoryID *string `json:"parentCategoryID"` // Optional, use pointer for nullability
	Icon             string  `json:"icon"`             // Optional
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name             *string `json:"name"`
	ParentCategoryID *string `json:"parentCategoryID"`
	Icon             *string `json:"icon"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID       string    `json:"categoryID"`
	Name             string    `json:"name"`
	ParentCategoryID *string   `json:"parentCategoryID,omitempty"`
	Icon             string    `json:"icon,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:       c.CategoryID,
		Name:             c.Name,
		ParentCategoryID: c.ParentCategoryID,
		Icon:             c.Icon,
		CreatedAt:        c.CreatedAt,
	}
}

// ToCategoryResponses converts a slice of domain.Category to DTOs.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(&c)
	}
	return responses
}
