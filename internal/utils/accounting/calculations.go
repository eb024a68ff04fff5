package accounting

import (
	"fmt"

	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceDeltas computes the signed per-account balance effect of a
// transaction. This is used by both the create and delete paths (delete
// negates the result) so that application and reversal stay exact inverses.
//
// income  -> +amount on the linked account
// expense -> -amount on the linked account
// transfer -> -amount on the source account, +amount on the destination
//
// A credit-card income/expense has no balance effect and yields an empty map.
// Missing account links are reported as errors; existence of the linked
// accounts is the caller's concern.
func BalanceDeltas(txn domain.Transaction) (map[string]decimal.Decimal, error) {
	deltas := make(map[string]decimal.Decimal)

	switch txn.Type {
	case domain.Income, domain.Expense:
		if txn.CreditCardUsed {
			// Intentionally orphaned from balance accounting.
			return deltas, nil
		}
		if txn.AccountID == nil {
			return nil, fmt.Errorf("account must be selected for %s transactions", txn.Type)
		}
		amount := txn.Amount
		if txn.Type == domain.Expense {
			amount = amount.Neg()
		}
		deltas[*txn.AccountID] = amount
	case domain.Transfer:
		if txn.TransferFromAccountID == nil || txn.TransferToAccountID == nil {
			return nil, fmt.Errorf("both from and to accounts must be selected for transfers")
		}
		// Add rather than assign so a self-transfer nets to zero instead of
		// clobbering one leg with the other.
		deltas[*txn.TransferFromAccountID] = deltas[*txn.TransferFromAccountID].Sub(txn.Amount)
		deltas[*txn.TransferToAccountID] = deltas[*txn.TransferToAccountID].Add(txn.Amount)
	default:
		return nil, fmt.Errorf("unknown transaction type '%s'", txn.Type)
	}

	return deltas, nil
}

// NegateDeltas returns the exact inverse of a delta set. Used when reversing a
// transaction's balance effect at delete time.
func NegateDeltas(deltas map[string]decimal.Decimal) map[string]decimal.Decimal {
	inverse := make(map[string]decimal.Decimal, len(deltas))
	for accountID, delta := range deltas {
		inverse[accountID] = delta.Neg()
	}
	return inverse
}
