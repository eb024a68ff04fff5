package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors the transaction type check constraint.
type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

// Transaction mirrors the transactions table. Nullable columns are pointers.
type Transaction struct {
	TransactionID         string          `db:"transaction_id"`
	Date                  *time.Time      `db:"date"`
	Name                  string          `db:"name"`
	Tag                   string          `db:"tag"`
	Amount                decimal.Decimal `db:"amount"`
	Type                  TransactionType `db:"type"`
	AccountID             *string         `db:"account_id"`
	TransferFromAccountID *string         `db:"transfer_from_account_id"`
	TransferToAccountID   *string         `db:"transfer_to_account_id"`
	CreditCardUsed        bool            `db:"credit_card_used"`
	CreditCardName        *string         `db:"credit_card_name"`
	AuditFields
}
