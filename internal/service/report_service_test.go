package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
	"billbook/mocks"
)

func TestReportService_Monthly(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	svc := NewReportService(invoiceRepo)
	businessID := uuid.New()

	invoiceRepo.On("List", mock.Anything, businessID).Return([]domain.Invoice{
		{
			Date:      "2025-03-05",
			Total:     1000,
			Paid:      600,
			TaxAmount: 100,
			Payments: []domain.Payment{
				{Amount: 400, Method: domain.MethodCash},
				{Amount: 200, Method: domain.MethodBank},
			},
		},
		{Date: "2025-02-10", Total: 9999}, // out of range
	}, nil)

	report, err := svc.Monthly(context.Background(), businessID, "2025-03")
	require.NoError(t, err)

	assert.Equal(t, 1, report.InvoiceCount)
	assert.Equal(t, 1000.0, report.Sales)
	assert.Equal(t, 100.0, report.TaxCollected)
	assert.Equal(t, 600.0, report.Collected)
	assert.Equal(t, 400.0, report.Outstanding)
	assert.InDelta(t, 350.0, report.EstimatedProfit, 1e-9)
	assert.InDelta(t, 600.0, report.EstimatedCost, 1e-9)
	assert.InDelta(t, 50.0, report.EstimatedExpense, 1e-9)
	assert.Equal(t, 400.0, report.ByMethod["cash"])
	assert.Equal(t, 200.0, report.ByMethod["bank"])
}
