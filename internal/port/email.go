package port

import (
	"context"

	"billbook/internal/domain"
)

// EmailSender defines the contract for sending transactional email.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, toEmail, toName string, invoice *domain.Invoice, business *domain.Business) error
	SendPaymentReceiptEmail(ctx context.Context, toEmail, toName string, invoice *domain.Invoice, payment *domain.Payment, business *domain.Business) error
}
