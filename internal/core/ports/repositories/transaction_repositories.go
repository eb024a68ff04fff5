package repositories

import (
	"context"

	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	// FindTransactionsByYear returns transactions whose date is non-null and
	// falls inside [year-01-01, year-12-31].
	FindTransactionsByYear(ctx context.Context, year int) ([]domain.Transaction, error)
}

// TransactionWriter persists and removes transactions. Both operations apply
// the given balance deltas to the referenced accounts atomically with the row
// change: either the row and every balance move together, or nothing does.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error
	DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error
}

// TransactionRepositoryFacade combines all transaction repository capabilities.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
