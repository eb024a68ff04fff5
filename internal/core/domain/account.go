package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID string `json:"accountID"` // Primary Key (UUID)
	Name      string `json:"name"`      // User-defined display name
	// StartingBalance is the account's running balance as of now. It is
	// maintained imperatively: every transaction create applies its signed
	// delta here and every delete reverses it, inside the same database
	// transaction as the row change.
	StartingBalance decimal.Decimal `json:"startingBalance"`
	AuditFields
}
