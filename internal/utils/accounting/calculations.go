package accounting

import (
	"fmt"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryDeltas computes the signed contribution a single transaction makes to
// each account balance it references. Amounts are positive at the transaction
// level; the sign is derived from the type and the role of the account:
//
//	INCOME   -> +amount to destination
//	EXPENSE  -> -amount from source
//	TRANSFER -> -amount from source, +amount to destination
//
// A nil account reference contributes nothing for that side.
func EntryDeltas(txn domain.Transaction) (map[string]decimal.Decimal, error) {
	if txn.Amount.IsNegative() {
		return nil, fmt.Errorf("transaction amount must not be negative for transaction ID %s", txn.TransactionID)
	}

	deltas := make(map[string]decimal.Decimal, 2)
	switch txn.Type {
	case domain.Income:
		if txn.DestinationAccountID != nil {
			deltas[*txn.DestinationAccountID] = deltas[*txn.DestinationAccountID].Add(txn.Amount)
		}
	case domain.Expense:
		if txn.SourceAccountID != nil {
			deltas[*txn.SourceAccountID] = deltas[*txn.SourceAccountID].Sub(txn.Amount)
		}
	case domain.Transfer:
		if txn.SourceAccountID != nil {
			deltas[*txn.SourceAccountID] = deltas[*txn.SourceAccountID].Sub(txn.Amount)
		}
		if txn.DestinationAccountID != nil {
			deltas[*txn.DestinationAccountID] = deltas[*txn.DestinationAccountID].Add(txn.Amount)
		}
	default:
		return nil, fmt.Errorf("unknown transaction type '%s' encountered for transaction ID %s", txn.Type, txn.TransactionID)
	}
	return deltas, nil
}

// BalanceChanges computes the net balance adjustments for a transaction
// mutation. The old transaction's effect is reversed and the new
// transaction's effect applied, each computed independently from its own
// type and account references, so the result stays correct when an update
// changes the type or moves the transaction between accounts.
//
// Insert passes oldTxn == nil, delete passes newTxn == nil.
func BalanceChanges(oldTxn, newTxn *domain.Transaction) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, 4)

	if oldTxn != nil {
		deltas, err := EntryDeltas(*oldTxn)
		if err != nil {
			return nil, fmt.Errorf("failed to reverse prior effect: %w", err)
		}
		for accountID, delta := range deltas {
			changes[accountID] = changes[accountID].Sub(delta)
		}
	}

	if newTxn != nil {
		deltas, err := EntryDeltas(*newTxn)
		if err != nil {
			return nil, fmt.Errorf("failed to compute new effect: %w", err)
		}
		for accountID, delta := range deltas {
			changes[accountID] = changes[accountID].Add(delta)
		}
	}

	// Drop entries that cancelled out so callers lock only accounts that move.
	for accountID, delta := range changes {
		if delta.IsZero() {
			delete(changes, accountID)
		}
	}
	return changes, nil
}
