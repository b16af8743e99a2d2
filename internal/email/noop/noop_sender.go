package noop

import (
	"context"

	"github.com/rs/zerolog/log"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that only logs what it would send.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, toEmail, toName string, invoice *domain.Invoice, business *domain.Business) error {
	log.Info().
		Str("to", toEmail).
		Str("name", toName).
		Str("invoice_no", invoice.InvoiceNo).
		Str("business", business.Name).
		Msg("noop email: invoice")
	return nil
}

func (s *noopSender) SendPaymentReceiptEmail(_ context.Context, toEmail, toName string, invoice *domain.Invoice, payment *domain.Payment, business *domain.Business) error {
	log.Info().
		Str("to", toEmail).
		Str("name", toName).
		Str("invoice_no", invoice.InvoiceNo).
		Float64("amount", payment.Amount).
		Msg("noop email: payment receipt")
	return nil
}
