package dto

import (
	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReportResponse is one account's row of the yearly report.
type AccountReportResponse struct {
	Account         string            `json:"account"`
	Start           decimal.Decimal   `json:"start"`
	MonthlyBalances []decimal.Decimal `json:"monthly_balances"`
}

// ReportTotalsResponse aggregates all account rows per month.
type ReportTotalsResponse struct {
	Start   decimal.Decimal   `json:"start"`
	Monthly []decimal.Decimal `json:"monthly"`
}

// YearlyReportResponse is the full report payload for one year.
type YearlyReportResponse struct {
	Year   int                     `json:"year"`
	Report []AccountReportResponse `json:"report"`
	Totals ReportTotalsResponse    `json:"totals"`
}

// ToYearlyReportResponse converts a domain.YearlyReport to its response DTO.
func ToYearlyReportResponse(r *domain.YearlyReport) YearlyReportResponse {
	rows := make([]AccountReportResponse, len(r.Accounts))
	for i, acc := range r.Accounts {
		rows[i] = AccountReportResponse{
			Account:         acc.AccountName,
			Start:           acc.Start,
			MonthlyBalances: acc.MonthlyBalances[:],
		}
	}
	return YearlyReportResponse{
		Year:   r.Year,
		Report: rows,
		Totals: ReportTotalsResponse{
			Start:   r.Totals.Start,
			Monthly: r.Totals.Monthly[:],
		},
	}
}
