package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType defines the kind of a ledger transaction.
type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// Transaction represents a single ledger entry.
//
// Account linkage depends on the type:
//   - income/expense link one account via AccountID, unless CreditCardUsed is
//     set, in which case the transaction is intentionally unlinked and has no
//     balance effect.
//   - transfer links a source and a destination account.
//
// Date is nullable; transactions without a date are stored but excluded from
// yearly report aggregation.
type Transaction struct {
	TransactionID         string          `json:"transactionID"` // Primary Key (UUID)
	Date                  *time.Time      `json:"date"`
	Name                  string          `json:"name"`
	Tag                   string          `json:"tag"`
	Amount                decimal.Decimal `json:"amount"` // Magnitude; sign derives from Type
	Type                  TransactionType `json:"type"`
	AccountID             *string         `json:"accountID"`
	TransferFromAccountID *string         `json:"transferFromAccountID"`
	TransferToAccountID   *string         `json:"transferToAccountID"`
	CreditCardUsed        bool            `json:"creditCardUsed"`
	CreditCardName        *string         `json:"creditCardName"`
	AuditFields
}

// LinkedAccountIDs returns the IDs of every account this transaction
// references, in source-before-destination order for transfers.
func (t Transaction) LinkedAccountIDs() []string {
	ids := []string{}
	if t.AccountID != nil {
		ids = append(ids, *t.AccountID)
	}
	if t.TransferFromAccountID != nil {
		ids = append(ids, *t.TransferFromAccountID)
	}
	if t.TransferToAccountID != nil {
		ids = append(ids, *t.TransferToAccountID)
	}
	return ids
}
