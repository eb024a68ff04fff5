package domain

import (
	"github.com/shopspring/decimal"
)

// MonthsPerYear is the number of buckets in a yearly report row.
const MonthsPerYear = 12

// AccountReport holds one account's row of a yearly report: the starting
// balance and the cumulative balance at the end of each calendar month.
type AccountReport struct {
	AccountID       string                         `json:"accountID"`
	AccountName     string                         `json:"account"`
	Start           decimal.Decimal                `json:"start"`
	MonthlyBalances [MonthsPerYear]decimal.Decimal `json:"monthlyBalances"`
}

// ReportTotals aggregates the per-account rows across all accounts. Monthly
// totals are sums of cumulative balances, not sums of deltas, so every
// account's starting balance compounds into every month.
type ReportTotals struct {
	Start   decimal.Decimal                `json:"start"`
	Monthly [MonthsPerYear]decimal.Decimal `json:"monthly"`
}

// YearlyReport is the full report for one calendar year.
type YearlyReport struct {
	Year     int             `json:"year"`
	Accounts []AccountReport `json:"report"`
	Totals   ReportTotals    `json:"totals"`
}
