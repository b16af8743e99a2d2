package servicemocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billbook/internal/domain"
	"billbook/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Create(ctx context.Context, businessID uuid.UUID, input service.CreateInvoiceInput) (*domain.Invoice, string, error) {
	args := m.Called(ctx, businessID, input)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.String(1), args.Error(2)
}

func (m *MockInvoiceService) Get(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, businessID uuid.UUID, filter service.InvoiceFilter) ([]domain.Invoice, *service.InvoiceSummary, error) {
	args := m.Called(ctx, businessID, filter)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	var summary *service.InvoiceSummary
	if args.Get(1) != nil {
		summary = args.Get(1).(*service.InvoiceSummary)
	}
	return invoices, summary, args.Error(2)
}

func (m *MockInvoiceService) UpdateItems(ctx context.Context, businessID, invoiceID uuid.UUID, input service.UpdateInvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, businessID, invoiceID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, businessID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, businessID, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceService) RecordPayment(ctx context.Context, businessID, invoiceID uuid.UUID, input service.PaymentInput) (*domain.Invoice, string, error) {
	args := m.Called(ctx, businessID, invoiceID, input)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.String(1), args.Error(2)
}

func (m *MockInvoiceService) DeletePayment(ctx context.Context, businessID, invoiceID, paymentID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, businessID, invoiceID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Send(ctx context.Context, businessID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, businessID, invoiceID)
	return args.Error(0)
}
