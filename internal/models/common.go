package models

import "time"

// AuditFields holds standard audit information persisted with every row.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}
