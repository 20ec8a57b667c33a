package domain

// Category groups transactions. Categories are hierarchical via a
// self-referencing parent and exclusively owned by one user.
type Category struct {
	CategoryID       string  `json:"categoryID"` // Primary Key (UUID)
	UserID           string  `json:"userID"`     // Owning user (NON-NULL)
	Name             string  `json:"name"`
	ParentCategoryID *string `json:"parentCategoryID,omitempty"` // Nullable FK -> categories (self-referencing)
	Icon             string  `json:"icon"`                       // Presentation hint
	AuditFields
}
