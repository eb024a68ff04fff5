package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/myfinanceapp/mfa_backend/internal/apperrors"
	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	portsrepo "github.com/myfinanceapp/mfa_backend/internal/core/ports/repositories"
	portssvc "github.com/myfinanceapp/mfa_backend/internal/core/ports/services"
	"github.com/myfinanceapp/mfa_backend/internal/dto"
	"github.com/myfinanceapp/mfa_backend/internal/middleware"
	"github.com/myfinanceapp/mfa_backend/internal/utils/accounting"
)

// TransactionService keeps account balances consistent with the transaction
// lifecycle: creating a transaction applies its signed balance deltas and
// deleting it reverses exactly those deltas, each inside one database
// transaction with the row change.
type TransactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// Ensure TransactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// CreateTransaction validates the request, resolves the linked accounts, and
// persists the transaction together with its balance effect. Nothing is
// written when validation fails.
func (s *TransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: invalid transaction type '%s'", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:         uuid.NewString(),
		Date:                  req.ParsedDate(),
		Name:                  req.Name,
		Tag:                   req.Tag,
		Amount:                req.Amount,
		Type:                  req.Type,
		AccountID:             req.AccountID,
		TransferFromAccountID: req.TransferFromAccountID,
		TransferToAccountID:   req.TransferToAccountID,
		CreditCardUsed:        req.CreditCardUsed,
		CreditCardName:        req.CreditCardName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	// A credit-card income/expense is intentionally unlinked from any account.
	if txn.CreditCardUsed && txn.Type != domain.Transfer {
		txn.AccountID = nil
	}

	balanceChanges, err := accounting.BalanceDeltas(txn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// Every account touched by the deltas must exist before anything is written.
	if len(balanceChanges) > 0 {
		accountIDs := make([]string, 0, len(balanceChanges))
		for accountID := range balanceChanges {
			accountIDs = append(accountIDs, accountID)
		}
		accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
		if err != nil {
			logger.Error("Failed to fetch accounts for transaction creation", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to fetch accounts: %w", err)
		}
		for _, accountID := range accountIDs {
			if _, found := accountsMap[accountID]; !found {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
			}
		}
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, balanceChanges); err != nil {
		logger.Error("Failed to save transaction", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

// DeleteTransaction reverses the balance effect the transaction applied at
// creation time and removes the record. The stored linkage is trusted: it was
// validated at create time. A linked account that has since vanished is a
// data-integrity condition and surfaces as NotFound rather than being skipped.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction for deletion",
				slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return err
	}

	balanceChanges, err := accounting.BalanceDeltas(*txn)
	if err != nil {
		// A persisted transaction with unresolvable linkage should not exist.
		logger.Error("Stored transaction has invalid linkage",
			slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s", apperrors.ErrInternal, err.Error())
	}

	reversal := accounting.NegateDeltas(balanceChanges)

	if err := s.transactionRepo.DeleteTransaction(ctx, *txn, reversal); err != nil {
		logger.Error("Failed to delete transaction",
			slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Transaction deleted successfully", slog.String("transaction_id", transactionID))
	return nil
}

// ListTransactions retrieves all transactions, most recent date first.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.ListTransactions(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}
