package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

// Estimation ratios for the monthly P&L sketch. The ledger only records
// sales, so cost lines are derived as fixed fractions of revenue.
const (
	profitRatio   = 0.35
	purchaseRatio = 0.60
	expenseRatio  = 0.05
)

// MonthlyReport summarizes one calendar month of trading.
type MonthlyReport struct {
	Month            string             `json:"month"` // "2025-03"
	Sales            float64            `json:"sales"`
	TaxCollected     float64            `json:"taxCollected"`
	EstimatedProfit  float64            `json:"estimatedProfit"`
	EstimatedCost    float64            `json:"estimatedCost"`
	EstimatedExpense float64            `json:"estimatedExpense"`
	InvoiceCount     int                `json:"invoiceCount"`
	Collected        float64            `json:"collected"`
	Outstanding      float64            `json:"outstanding"`
	ByMethod         map[string]float64 `json:"byMethod"`
}

// ReportService builds trading reports from the invoice ledger.
type ReportService interface {
	Monthly(ctx context.Context, businessID uuid.UUID, month string) (*MonthlyReport, error)
	InvoiceRegister(ctx context.Context, businessID uuid.UUID) ([]domain.Invoice, error)
}

type reportService struct {
	invoiceRepo port.InvoiceRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(invoiceRepo port.InvoiceRepository) ReportService {
	return &reportService{invoiceRepo: invoiceRepo}
}

// Monthly reports the given "YYYY-MM" month; an empty month means the
// current one.
func (s *reportService) Monthly(ctx context.Context, businessID uuid.UUID, month string) (*MonthlyReport, error) {
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	invoices, err := s.invoiceRepo.List(ctx, businessID)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Month:    month,
		ByMethod: map[string]float64{},
	}

	for _, inv := range invoices {
		if !strings.HasPrefix(inv.Date, month) {
			continue
		}
		report.InvoiceCount++
		report.Sales += inv.Total
		report.TaxCollected += inv.TaxAmount
		report.Collected += inv.Paid
		report.Outstanding += inv.BalanceDue()

		for _, p := range inv.Payments {
			report.ByMethod[string(p.Method)] += p.Amount
		}
	}

	report.EstimatedProfit = report.Sales * profitRatio
	report.EstimatedCost = report.Sales * purchaseRatio
	report.EstimatedExpense = report.Sales * expenseRatio

	return report, nil
}

// InvoiceRegister returns every invoice ordered as stored, for export.
func (s *reportService) InvoiceRegister(ctx context.Context, businessID uuid.UUID) ([]domain.Invoice, error) {
	return s.invoiceRepo.List(ctx, businessID)
}
