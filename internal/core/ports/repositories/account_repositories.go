package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for accounts.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccountName(ctx context.Context, accountID string, name string, now time.Time) error
}

// AccountBalanceUpdater defines the operations used to apply balance deltas
// inside an open database transaction. Both methods must be called with the
// same pgx.Tx; the lock step guarantees every account in the delta set exists
// before any balance is touched.
type AccountBalanceUpdater interface {
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account repository capabilities.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceUpdater
}
