package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billbook/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceEmail(ctx context.Context, toEmail, toName string, invoice *domain.Invoice, business *domain.Business) error {
	args := m.Called(ctx, toEmail, toName, invoice, business)
	return args.Error(0)
}

func (m *MockEmailSender) SendPaymentReceiptEmail(ctx context.Context, toEmail, toName string, invoice *domain.Invoice, payment *domain.Payment, business *domain.Business) error {
	args := m.Called(ctx, toEmail, toName, invoice, payment, business)
	return args.Error(0)
}
