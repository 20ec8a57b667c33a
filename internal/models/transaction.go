package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the persisted transaction kind.
type TransactionType string

// Transaction is the database representation of a ledger entry.
// Amount is positive; the sign is derived from type and account role.
type Transaction struct {
	TransactionID        string
	UserID               string
	Type                 TransactionType
	Amount               decimal.Decimal
	SourceAccountID      *string
	DestinationAccountID *string
	CategoryID           *string
	Notes                string
	TransactionDate      time.Time
	AuditFields
}
