package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/myfinanceapp/mfa_backend/internal/apperrors"
	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	portsrepo "github.com/myfinanceapp/mfa_backend/internal/core/ports/repositories"
	"github.com/myfinanceapp/mfa_backend/internal/models"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountBalanceUpdater
}

// NewTransactionRepository creates a new repository for transaction data. It
// takes the account repository so transaction writes and the balance updates
// they imply share one database transaction.
func NewTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountBalanceUpdater) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:         d.TransactionID,
		Date:                  d.Date,
		Name:                  d.Name,
		Tag:                   d.Tag,
		Amount:                d.Amount,
		Type:                  models.TransactionType(d.Type),
		AccountID:             d.AccountID,
		TransferFromAccountID: d.TransferFromAccountID,
		TransferToAccountID:   d.TransferToAccountID,
		CreditCardUsed:        d.CreditCardUsed,
		CreditCardName:        d.CreditCardName,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		Date:                  m.Date,
		Name:                  m.Name,
		Tag:                   m.Tag,
		Amount:                m.Amount,
		Type:                  domain.TransactionType(m.Type),
		AccountID:             m.AccountID,
		TransferFromAccountID: m.TransferFromAccountID,
		TransferToAccountID:   m.TransferToAccountID,
		CreditCardUsed:        m.CreditCardUsed,
		CreditCardName:        m.CreditCardName,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const transactionColumns = `transaction_id, date, name, tag, amount, type,
	account_id, transfer_from_account_id, transfer_to_account_id,
	credit_card_used, credit_card_name, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Date,
		&m.Name,
		&m.Tag,
		&m.Amount,
		&m.Type,
		&m.AccountID,
		&m.TransferFromAccountID,
		&m.TransferToAccountID,
		&m.CreditCardUsed,
		&m.CreditCardName,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveTransaction inserts the transaction row and applies the balance deltas
// to the referenced accounts in a single database transaction. The account
// rows are locked before the balances move, so concurrent writes against the
// same accounts serialize instead of losing updates.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	logger := slog.Default()
	m := toModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.ErrorContext(ctx, "Failed to rollback transaction during save", slog.String("error", rbErr.Error()))
		}
	}()

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (
			transaction_id, date, name, tag, amount, type,
			account_id, transfer_from_account_id, transfer_to_account_id,
			credit_card_used, credit_card_name, created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.Date,
		m.Name,
		m.Tag,
		m.Amount,
		m.Type,
		m.AccountID,
		m.TransferFromAccountID,
		m.TransferToAccountID,
		m.CreditCardUsed,
		m.CreditCardName,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the transaction row and reverses its balance
// effect, atomically. The balanceChanges map must already contain the exact
// inverse deltas of the original insert.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	logger := slog.Default()

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.ErrorContext(ctx, "Failed to rollback transaction during delete", slog.String("error", rbErr.Error()))
		}
	}()

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, time.Now().UTC()); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// applyBalanceChanges locks the affected account rows and applies the deltas.
// A missing account surfaces as ErrNotFound before any balance moves.
func (r *PgxTransactionRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}

	return r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, now)
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := toDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves all transactions, most recent first. Undated
// transactions sort last.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date DESC NULLS LAST, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// FindTransactionsByYear retrieves the dated transactions of a calendar year.
// Rows with a null date never participate in reports.
func (r *PgxTransactionRepository) FindTransactionsByYear(ctx context.Context, year int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE date IS NOT NULL AND date >= $1 AND date < $2
		ORDER BY date ASC, created_at ASC;
	`
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	rows, err := r.Pool.Query(ctx, query, yearStart, yearEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for year %d: %w", year, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, toDomainTransaction(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return transactions, nil
}
