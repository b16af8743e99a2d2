package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
	"billbook/mocks"
)

func TestDashboardService_Overview(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	contactRepo := new(mocks.MockContactRepo)
	productRepo := new(mocks.MockProductRepo)

	svc := NewDashboardService(invoiceRepo, contactRepo, productRepo).(*dashboardService)
	svc.now = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }

	businessID := uuid.New()
	widgetID := uuid.New()
	gadgetID := uuid.New()

	contactRepo.On("List", mock.Anything, businessID).Return([]domain.Contact{
		{Name: "Alice"}, {Name: "Bob"},
	}, nil)
	productRepo.On("List", mock.Anything, businessID).Return([]domain.Product{
		{ID: widgetID, Name: "Widget", Category: "Hardware", Stock: 1, MinStock: 5, Active: true},
		{ID: gadgetID, Name: "Gadget", Category: "Electronics", Stock: 50, MinStock: 5, Active: true},
	}, nil)
	invoiceRepo.On("List", mock.Anything, businessID).Return([]domain.Invoice{
		{
			Date:      "2025-03-10",
			Status:    domain.StatusPaid,
			Total:     1130,
			Paid:      1130,
			TaxAmount: 130,
			Items: []domain.LineItem{
				{ProductID: widgetID, Name: "Widget", Qty: 2, Amount: 1000},
			},
		},
		{
			Date:   "2025-02-20",
			Status: domain.StatusUnpaid,
			Total:  500,
			Items: []domain.LineItem{
				{ProductID: gadgetID, Name: "Gadget", Qty: 1, Amount: 500},
			},
		},
	}, nil)

	overview, err := svc.Overview(context.Background(), businessID)
	require.NoError(t, err)

	assert.Equal(t, 1630.0, overview.TotalBilled)
	assert.Equal(t, 1130.0, overview.TotalCollected)
	assert.Equal(t, 500.0, overview.TotalReceivable)
	assert.Equal(t, 130.0, overview.TaxCollected)
	assert.Equal(t, 2, overview.InvoiceCount)
	assert.Equal(t, 1, overview.Statuses.Paid)
	assert.Equal(t, 1, overview.Statuses.Unpaid)
	assert.Equal(t, 2, overview.CustomerCount)
	assert.Equal(t, 1, overview.LowStockCount)

	// March revenue 1130 vs February 500
	assert.InDelta(t, 126.0, overview.RevenueGrowthPct, 0.01)

	require.Len(t, overview.MonthlyRevenue, 6)
	last := overview.MonthlyRevenue[5]
	assert.Equal(t, "2025-03", last.Month)
	assert.Equal(t, 1130.0, last.Revenue)
	assert.Equal(t, 500.0, overview.MonthlyRevenue[4].Revenue)

	require.Len(t, overview.DailyRevenue, 7)
	assert.Equal(t, 1130.0, overview.DailyRevenue[1].Revenue) // 2025-03-10

	require.NotEmpty(t, overview.TopProducts)
	assert.Equal(t, "Widget", overview.TopProducts[0].Name)
	assert.Equal(t, 1000.0, overview.TopProducts[0].Revenue)

	require.Len(t, overview.CategoryShare, 2)
	assert.Equal(t, "Hardware", overview.CategoryShare[0].Category)
}

func TestDashboardService_Overview_Empty(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	contactRepo := new(mocks.MockContactRepo)
	productRepo := new(mocks.MockProductRepo)
	svc := NewDashboardService(invoiceRepo, contactRepo, productRepo)
	businessID := uuid.New()

	invoiceRepo.On("List", mock.Anything, businessID).Return([]domain.Invoice{}, nil)
	contactRepo.On("List", mock.Anything, businessID).Return([]domain.Contact{}, nil)
	productRepo.On("List", mock.Anything, businessID).Return([]domain.Product{}, nil)

	overview, err := svc.Overview(context.Background(), businessID)
	require.NoError(t, err)

	assert.Zero(t, overview.TotalBilled)
	assert.Zero(t, overview.RevenueGrowthPct)
	assert.Len(t, overview.MonthlyRevenue, 6)
	assert.Len(t, overview.DailyRevenue, 7)
	assert.Empty(t, overview.TopProducts)
}
