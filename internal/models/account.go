package models

import "github.com/shopspring/decimal"

// AccountType classifies an account for presentation purposes.
type AccountType string

// Account is the database representation of a financial account.
// CurrentBalance is maintained by the ledger write path, never set directly.
type Account struct {
	AccountID      string
	UserID         string
	Name           string
	AccountType    AccountType
	CurrencyCode   string
	Description    string
	IsActive       bool
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	AuditFields
}
