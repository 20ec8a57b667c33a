package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates how a transaction affects its account references.
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

// Transaction is a single ledger entry. Amount is always positive; the sign
// of its contribution to an account balance is derived from the type and the
// role (source vs destination) of the account, never stored.
//
// INCOME affects only the destination account (+amount).
// EXPENSE affects only the source account (-amount).
// TRANSFER affects both (-amount source, +amount destination).
// Absent account references contribute nothing for that side.
type Transaction struct {
	TransactionID        string          `json:"transactionID"` // Primary Key (UUID)
	UserID               string          `json:"userID"`        // Owning user (NON-NULL)
	Type                 TransactionType `json:"type"`
	Amount               decimal.Decimal `json:"amount"`                         // Positive value
	SourceAccountID      *string         `json:"sourceAccountID,omitempty"`      // Nullable FK -> accounts
	DestinationAccountID *string         `json:"destinationAccountID,omitempty"` // Nullable FK -> accounts
	CategoryID           *string         `json:"categoryID,omitempty"`           // Nullable FK -> categories
	Notes                string          `json:"notes"`
	TransactionDate      time.Time       `json:"transactionDate"`
	AuditFields
}
