package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account for presentation and net-worth grouping.
// It does not change the sign conventions of the ledger.
type AccountType string

const (
	Cash       AccountType = "CASH"
	Bank       AccountType = "BANK"
	CreditCard AccountType = "CREDIT_CARD"
	Loan       AccountType = "LOAN"
	Investment AccountType = "INVESTMENT"
)

// IsLiability reports whether balances of this account type count against net worth.
func (t AccountType) IsLiability() bool {
	return t == CreditCard || t == Loan
}

// Account represents a financial account within the core domain.
// CurrentBalance is a materialized aggregate: it always equals InitialBalance
// plus the signed sum of all transactions referencing the account, and is
// never accepted as direct input after creation.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`    // Owning user (NON-NULL)
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrencyCode   string          `json:"currencyCode"`
	Description    string          `json:"description"` // Nullable user description
	IsActive       bool            `json:"isActive"`    // Soft delete flag
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}
