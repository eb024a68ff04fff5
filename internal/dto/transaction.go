package dto

import (
	"time"

	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

// CreateTransactionRequest defines the data needed to record a transaction.
// Account linkage requirements depend on Type and are enforced by the service.
type CreateTransactionRequest struct {
	Date                  *string                `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Name                  string                 `json:"name" binding:"required"`
	Tag                   string                 `json:"tag"`
	Amount                decimal.Decimal        `json:"amount"`
	Type                  domain.TransactionType `json:"type" binding:"required,oneof=income expense transfer"`
	AccountID             *string                `json:"accountID"`
	TransferFromAccountID *string                `json:"transferFromAccountID"`
	TransferToAccountID   *string                `json:"transferToAccountID"`
	CreditCardUsed        bool                   `json:"creditCardUsed"`
	CreditCardName        *string                `json:"creditCardName"`
}

// ParsedDate parses the request date, or returns nil when absent. Format
// validity is already guaranteed by the binding tag.
func (r CreateTransactionRequest) ParsedDate() *time.Time {
	if r.Date == nil || *r.Date == "" {
		return nil
	}
	d, err := time.Parse(DateLayout, *r.Date)
	if err != nil {
		return nil
	}
	return &d
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID         string                 `json:"transactionID"`
	Date                  *string                `json:"date"`
	Name                  string                 `json:"name"`
	Tag                   string                 `json:"tag"`
	Amount                decimal.Decimal        `json:"amount"`
	Type                  domain.TransactionType `json:"type"`
	AccountID             *string                `json:"accountID"`
	TransferFromAccountID *string                `json:"transferFromAccountID"`
	TransferToAccountID   *string                `json:"transferToAccountID"`
	CreditCardUsed        bool                   `json:"creditCardUsed"`
	CreditCardName        *string                `json:"creditCardName"`
	CreatedAt             time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	var date *string
	if txn.Date != nil {
		formatted := txn.Date.Format(DateLayout)
		date = &formatted
	}
	return TransactionResponse{
		TransactionID:         txn.TransactionID,
		Date:                  date,
		Name:                  txn.Name,
		Tag:                   txn.Tag,
		Amount:                txn.Amount,
		Type:                  txn.Type,
		AccountID:             txn.AccountID,
		TransferFromAccountID: txn.TransferFromAccountID,
		TransferToAccountID:   txn.TransferToAccountID,
		CreditCardUsed:        txn.CreditCardUsed,
		CreditCardName:        txn.CreditCardName,
		CreatedAt:             txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
