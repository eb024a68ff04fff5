package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/myfinanceapp/mfa_backend/internal/apperrors"
	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	portsrepo "github.com/myfinanceapp/mfa_backend/internal/core/ports/repositories"
	portssvc "github.com/myfinanceapp/mfa_backend/internal/core/ports/services"
	"github.com/myfinanceapp/mfa_backend/internal/dto"
	"github.com/myfinanceapp/mfa_backend/internal/middleware"
)

// AccountService provides account CRUD operations.
type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// Ensure AccountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount creates a new account with the given name and starting balance.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Name:            req.Name,
		StartingBalance: req.StartingBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID",
				slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err // Propagate error (including NotFound)
	}
	return account, nil
}

// ListAccounts retrieves all accounts ordered by name.
func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}
	return accounts, nil
}

// UpdateAccount renames an account. The starting balance is deliberately not
// updatable here: it is running state owned by the transaction lifecycle.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name == nil || *req.Name == account.Name {
		logger.Debug("No changes provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountName(ctx, accountID, *req.Name, now); err != nil {
		logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	account.Name = *req.Name
	account.LastUpdatedAt = now

	logger.Info("Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}
