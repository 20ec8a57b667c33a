package dto

import (
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Which account references are required depends on the type: INCOME needs a
// destination, EXPENSE a source, TRANSFER both.
type CreateTransactionRequest struct {
	Type                 domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Amount               decimal.Decimal        `json:"amount" binding:"required"`
	SourceAccountID      *string                `json:"sourceAccountID"`
	DestinationAccountID *string                `json:"destinationAccountID"`
	CategoryID           *string                `json:"categoryID"`
	Notes                string                 `json:"notes"`
	TransactionDate      time.Time              `json:"transactionDate" binding:"required"`
}

// UpdateTransactionRequest defines the data allowed for rewriting a transaction.
// The full transaction is re-stated rather than patched so balance effects stay unambiguous.
type UpdateTransactionRequest struct {
	Type                 domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Amount               decimal.Decimal        `json:"amount" binding:"required"`
	SourceAccountID      *string                `json:"sourceAccountID"`
	DestinationAccountID *string                `json:"destinationAccountID"`
	CategoryID           *string                `json:"categoryID"`
	Notes                string                 `json:"notes"`
	TransactionDate      time.Time              `json:"transactionDate" binding:"required"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	Type                 domain.TransactionType `json:"type"`
	Amount               decimal.Decimal        `json:"amount"`
	SourceAccountID      *string                `json:"sourceAccountID,omitempty"`
	DestinationAccountID *string                `json:"destinationAccountID,omitempty"`
	CategoryID           *string                `json:"categoryID,omitempty"`
	Notes                string                 `json:"notes"`
	TransactionDate      time.Time              `json:"transactionDate"`
	CreatedAt            time.Time              `json:"createdAt"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID  *string `form:"accountID"`
	CategoryID *string `form:"categoryID"`
	Type       *string `form:"type"`
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
}

// ListTransactionsResponse wraps the paginated list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		Type:                 txn.Type,
		Amount:               txn.Amount,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		CategoryID:           txn.CategoryID,
		Notes:                txn.Notes,
		TransactionDate:      txn.TransactionDate,
		CreatedAt:            txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
