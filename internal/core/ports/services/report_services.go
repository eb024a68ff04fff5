package services

import (
	"context"

	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
)

// ReportSvcFacade defines the yearly report operation.
type ReportSvcFacade interface {
	GetYearlyReport(ctx context.Context, year int) (*domain.YearlyReport, error)
}
