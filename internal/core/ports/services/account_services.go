package services

import (
	"context"

	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	"github.com/myfinanceapp/mfa_backend/internal/dto"
)

// AccountSvcFacade defines the operations exposed by the account service.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
}
