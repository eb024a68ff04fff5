package models

import (
	"github.com/shopspring/decimal"
)

// Account mirrors the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	Name            string          `db:"name"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	AuditFields
}
