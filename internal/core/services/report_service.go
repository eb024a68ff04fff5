package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/myfinanceapp/mfa_backend/internal/apperrors"
	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	portsrepo "github.com/myfinanceapp/mfa_backend/internal/core/ports/repositories"
	portssvc "github.com/myfinanceapp/mfa_backend/internal/core/ports/services"
	"github.com/myfinanceapp/mfa_backend/internal/middleware"
)

// moneyScale is the number of decimal places in every reported monetary value.
const moneyScale = 2

// ReportService builds yearly financial reports: per-account cumulative
// month-end balances plus cross-account totals.
type ReportService struct {
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionReader
}

// NewReportService creates a new ReportService.
func NewReportService(accountRepo portsrepo.AccountReader, transactionRepo portsrepo.TransactionReader) *ReportService {
	return &ReportService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure ReportService implements the portssvc.ReportSvcFacade interface
var _ portssvc.ReportSvcFacade = (*ReportService)(nil)

// GetYearlyReport aggregates the year's transactions into 12 cumulative
// month-end balances per account, folding forward from each account's current
// starting balance, and sums the recorded balances into monthly totals.
//
// This is a read-only projection: a transfer leg naming a vanished account
// still contributes its other leg, unlike the strict atomicity enforced on
// the create/delete path.
func (s *ReportService) GetYearlyReport(ctx context.Context, year int) (*domain.YearlyReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if year <= 0 {
		return nil, fmt.Errorf("%w: invalid year %d", apperrors.ErrValidation, year)
	}

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts for report", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: no accounts found", apperrors.ErrNotFound)
	}

	transactions, err := s.transactionRepo.FindTransactionsByYear(ctx, year)
	if err != nil {
		logger.Error("Failed to fetch transactions for report",
			slog.Int("year", year), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch transactions for year %d: %w", year, err)
	}

	buckets := monthlyBuckets(transactions)

	report := &domain.YearlyReport{
		Year:     year,
		Accounts: make([]domain.AccountReport, 0, len(accounts)),
	}

	for _, account := range accounts {
		row := domain.AccountReport{
			AccountID:   account.AccountID,
			AccountName: account.Name,
			Start:       account.StartingBalance.Round(moneyScale),
		}

		running := account.StartingBalance
		for month := 0; month < domain.MonthsPerYear; month++ {
			if deltas, ok := buckets[account.AccountID]; ok {
				running = running.Add(deltas[month])
			}
			row.MonthlyBalances[month] = running.Round(moneyScale)
			// Totals compound each account's cumulative balance, not its delta.
			report.Totals.Monthly[month] = report.Totals.Monthly[month].Add(row.MonthlyBalances[month])
		}

		report.Totals.Start = report.Totals.Start.Add(row.Start)
		report.Accounts = append(report.Accounts, row)
	}

	for month := 0; month < domain.MonthsPerYear; month++ {
		report.Totals.Monthly[month] = report.Totals.Monthly[month].Round(moneyScale)
	}
	report.Totals.Start = report.Totals.Start.Round(moneyScale)

	logger.Debug("Yearly report built",
		slog.Int("year", year),
		slog.Int("accounts", len(accounts)),
		slog.Int("transactions", len(transactions)))
	return report, nil
}

// monthlyBuckets sums signed deltas into per-account, per-month buckets.
// Transactions without a date are excluded upstream by the repository query;
// the nil check here guards against callers passing unfiltered sets.
func monthlyBuckets(transactions []domain.Transaction) map[string]*[domain.MonthsPerYear]decimal.Decimal {
	buckets := make(map[string]*[domain.MonthsPerYear]decimal.Decimal)

	add := func(accountID string, month int, amount decimal.Decimal) {
		deltas, ok := buckets[accountID]
		if !ok {
			deltas = &[domain.MonthsPerYear]decimal.Decimal{}
			buckets[accountID] = deltas
		}
		deltas[month] = deltas[month].Add(amount)
	}

	for _, txn := range transactions {
		if txn.Date == nil {
			continue
		}
		month := int(txn.Date.Month()) - 1

		switch txn.Type {
		case domain.Income, domain.Expense:
			if txn.CreditCardUsed || txn.AccountID == nil {
				continue
			}
			amount := txn.Amount
			if txn.Type == domain.Expense {
				amount = amount.Neg()
			}
			add(*txn.AccountID, month, amount)
		case domain.Transfer:
			// Each leg applies independently; a dangling leg does not void
			// the other in this read-only projection.
			if txn.TransferFromAccountID != nil {
				add(*txn.TransferFromAccountID, month, txn.Amount.Neg())
			}
			if txn.TransferToAccountID != nil {
				add(*txn.TransferToAccountID, month, txn.Amount)
			}
		}
	}

	return buckets
}
