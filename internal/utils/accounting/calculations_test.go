package accounting_test

import (
	"math/rand"
	"testing"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/pennyflow/penny_tracker_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func makeTxn(txnType domain.TransactionType, amount int64, source, dest *string) domain.Transaction {
	return domain.Transaction{
		TransactionID:        "txn-1",
		Type:                 txnType,
		Amount:               decimal.NewFromInt(amount),
		SourceAccountID:      source,
		DestinationAccountID: dest,
	}
}

func TestEntryDeltas(t *testing.T) {
	accA := strPtr("acc-a")
	accB := strPtr("acc-b")

	tests := []struct {
		name string
		txn  domain.Transaction
		want map[string]int64
	}{
		{
			name: "income credits destination",
			txn:  makeTxn(domain.Income, 500, nil, accA),
			want: map[string]int64{"acc-a": 500},
		},
		{
			name: "expense debits source",
			txn:  makeTxn(domain.Expense, 200, accA, nil),
			want: map[string]int64{"acc-a": -200},
		},
		{
			name: "transfer moves between accounts",
			txn:  makeTxn(domain.Transfer, 300, accA, accB),
			want: map[string]int64{"acc-a": -300, "acc-b": 300},
		},
		{
			name: "income without destination is a no-op",
			txn:  makeTxn(domain.Income, 500, nil, nil),
			want: map[string]int64{},
		},
		{
			name: "expense without source is a no-op",
			txn:  makeTxn(domain.Expense, 200, nil, nil),
			want: map[string]int64{},
		},
		{
			name: "transfer with only source debits one side",
			txn:  makeTxn(domain.Transfer, 100, accA, nil),
			want: map[string]int64{"acc-a": -100},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			deltas, err := accounting.EntryDeltas(tc.txn)
			require.NoError(t, err)
			assert.Len(t, deltas, len(tc.want))
			for accID, want := range tc.want {
				assert.True(t, deltas[accID].Equal(decimal.NewFromInt(want)),
					"account %s: want %d, got %s", accID, want, deltas[accID])
			}
		})
	}
}

func TestEntryDeltas_UnknownType(t *testing.T) {
	_, err := accounting.EntryDeltas(makeTxn("REFUND", 10, nil, nil))
	assert.Error(t, err)
}

func TestEntryDeltas_NegativeAmount(t *testing.T) {
	txn := makeTxn(domain.Income, 0, nil, strPtr("acc-a"))
	txn.Amount = decimal.NewFromInt(-5)
	_, err := accounting.EntryDeltas(txn)
	assert.Error(t, err)
}

func TestBalanceChanges_Insert(t *testing.T) {
	newTxn := makeTxn(domain.Income, 500, nil, strPtr("acc-a"))

	changes, err := accounting.BalanceChanges(nil, &newTxn)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, changes["acc-a"].Equal(decimal.NewFromInt(500)))
}

func TestBalanceChanges_Delete(t *testing.T) {
	oldTxn := makeTxn(domain.Transfer, 300, strPtr("acc-a"), strPtr("acc-b"))

	changes, err := accounting.BalanceChanges(&oldTxn, nil)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.True(t, changes["acc-a"].Equal(decimal.NewFromInt(300)))
	assert.True(t, changes["acc-b"].Equal(decimal.NewFromInt(-300)))
}

// An expense edited into a transfer of equal amount leaves the source account
// untouched: the reversal and the reapplication cancel out exactly.
func TestBalanceChanges_UpdateTypeChange(t *testing.T) {
	oldTxn := makeTxn(domain.Expense, 200, strPtr("acc-a"), nil)
	newTxn := makeTxn(domain.Transfer, 200, strPtr("acc-a"), strPtr("acc-b"))

	changes, err := accounting.BalanceChanges(&oldTxn, &newTxn)
	require.NoError(t, err)
	require.Len(t, changes, 1, "cancelled-out source account must be dropped")
	assert.True(t, changes["acc-b"].Equal(decimal.NewFromInt(200)))
}

func TestBalanceChanges_UpdateAccountMove(t *testing.T) {
	oldTxn := makeTxn(domain.Expense, 150, strPtr("acc-a"), nil)
	newTxn := makeTxn(domain.Expense, 150, strPtr("acc-b"), nil)

	changes, err := accounting.BalanceChanges(&oldTxn, &newTxn)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.True(t, changes["acc-a"].Equal(decimal.NewFromInt(150)))
	assert.True(t, changes["acc-b"].Equal(decimal.NewFromInt(-150)))
}

func TestBalanceChanges_UpdateAmountOnly(t *testing.T) {
	oldTxn := makeTxn(domain.Income, 100, nil, strPtr("acc-a"))
	newTxn := makeTxn(domain.Income, 175, nil, strPtr("acc-a"))

	changes, err := accounting.BalanceChanges(&oldTxn, &newTxn)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, changes["acc-a"].Equal(decimal.NewFromInt(75)))
}

// Reconciliation invariant: after a random sequence of inserts, updates and
// deletes, each account balance equals the initial balance plus the signed
// sum of the currently-existing transactions referencing it.
func TestBalanceChanges_ReconciliationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	accounts := []string{"acc-a", "acc-b", "acc-c"}
	balances := map[string]decimal.Decimal{}
	initial := map[string]decimal.Decimal{}
	for _, id := range accounts {
		initial[id] = decimal.NewFromInt(rng.Int63n(1000))
		balances[id] = initial[id]
	}

	randomTxn := func(id string) domain.Transaction {
		txn := domain.Transaction{
			TransactionID: id,
			Amount:        decimal.NewFromInt(rng.Int63n(500) + 1),
		}
		switch rng.Intn(3) {
		case 0:
			txn.Type = domain.Income
			txn.DestinationAccountID = strPtr(accounts[rng.Intn(len(accounts))])
		case 1:
			txn.Type = domain.Expense
			txn.SourceAccountID = strPtr(accounts[rng.Intn(len(accounts))])
		default:
			txn.Type = domain.Transfer
			src := rng.Intn(len(accounts))
			dst := (src + 1 + rng.Intn(len(accounts)-1)) % len(accounts)
			txn.SourceAccountID = strPtr(accounts[src])
			txn.DestinationAccountID = strPtr(accounts[dst])
		}
		return txn
	}

	apply := func(changes map[string]decimal.Decimal) {
		for accID, delta := range changes {
			balances[accID] = balances[accID].Add(delta)
		}
	}

	ledger := map[string]domain.Transaction{}
	for i := 0; i < 500; i++ {
		op := rng.Intn(3)
		switch {
		case op == 0 || len(ledger) == 0: // insert
			txn := randomTxn(uuidLike(rng))
			changes, err := accounting.BalanceChanges(nil, &txn)
			require.NoError(t, err)
			apply(changes)
			ledger[txn.TransactionID] = txn
		case op == 1: // update
			var victim string
			for id := range ledger {
				victim = id
				break
			}
			oldTxn := ledger[victim]
			newTxn := randomTxn(victim)
			changes, err := accounting.BalanceChanges(&oldTxn, &newTxn)
			require.NoError(t, err)
			apply(changes)
			ledger[victim] = newTxn
		default: // delete
			var victim string
			for id := range ledger {
				victim = id
				break
			}
			oldTxn := ledger[victim]
			changes, err := accounting.BalanceChanges(&oldTxn, nil)
			require.NoError(t, err)
			apply(changes)
			delete(ledger, victim)
		}
	}

	// Recompute each balance from scratch and compare.
	for _, accID := range accounts {
		expected := initial[accID]
		for _, txn := range ledger {
			deltas, err := accounting.EntryDeltas(txn)
			require.NoError(t, err)
			expected = expected.Add(deltas[accID])
		}
		assert.True(t, balances[accID].Equal(expected),
			"account %s: incremental %s vs recomputed %s", accID, balances[accID], expected)
	}
}

func uuidLike(rng *rand.Rand) string {
	const chars = "abcdef0123456789"
	b := make([]byte, 16)
	for i := range b {
		b[i] = chars[rng.Intn(len(chars))]
	}
	return string(b)
}
