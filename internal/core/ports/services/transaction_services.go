package services

import (
	"context"

	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	"github.com/myfinanceapp/mfa_backend/internal/dto"
)

// TransactionSvcFacade defines the operations exposed by the transaction
// service: validated creation with balance application, deletion with exact
// balance reversal, and listing.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}
