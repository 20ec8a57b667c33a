package models

// Category is the database representation of a transaction category.
type Category struct {
	CategoryID       string
	UserID           string
	Name             string
	ParentCategoryID *string
	Icon             string
	AuditFields
}
