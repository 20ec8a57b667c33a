package mapping

import (
	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/pennyflow/penny_tracker_app/internal/models"
)

// ToModelCategory converts a domain category to its model representation.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:       d.CategoryID,
		UserID:           d.UserID,
		Name:             d.Name,
		ParentCategoryID: d.ParentCategoryID,
		Icon:             d.Icon,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model category to its domain representation.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:       m.CategoryID,
		UserID:           m.UserID,
		Name:             m.Name,
		ParentCategoryID: m.ParentCategoryID,
		Icon:             m.Icon,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model categories.
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
