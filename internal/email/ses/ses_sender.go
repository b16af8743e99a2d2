package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, toEmail, toName string, invoice *domain.Invoice, business *domain.Business) error {
	subject := fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNo, business.Name)
	htmlBody := buildInvoiceHTML(toName, invoice, business)
	textBody := buildInvoiceText(toName, invoice, business)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendPaymentReceiptEmail(ctx context.Context, toEmail, toName string, invoice *domain.Invoice, payment *domain.Payment, business *domain.Business) error {
	subject := fmt.Sprintf("Payment received for invoice %s", invoice.InvoiceNo)
	htmlBody := buildReceiptHTML(toName, invoice, payment, business)
	textBody := fmt.Sprintf(
		"Hi %s,\n\n%s has recorded a payment of %.2f (%s) against invoice %s on %s.\nOutstanding balance: %.2f\n\nThank you,\n%s",
		toName, business.Name, payment.Amount, payment.Method, invoice.InvoiceNo, payment.Date, invoice.BalanceDue(), business.Name,
	)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildInvoiceText(name string, invoice *domain.Invoice, business *domain.Business) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nPlease find below the summary of invoice %s from %s, dated %s.\n\n",
		name, invoice.InvoiceNo, business.Name, invoice.Date)
	for _, item := range invoice.Items {
		fmt.Fprintf(&b, "- %s x %g = %.2f\n", item.Name, item.Qty, item.Amount)
	}
	fmt.Fprintf(&b, "\nSubtotal: %.2f\n", invoice.Subtotal)
	if invoice.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -%.2f\n", invoice.Discount)
	}
	if invoice.TaxEnabled {
		fmt.Fprintf(&b, "Tax: %.2f\n", invoice.TaxAmount)
	}
	fmt.Fprintf(&b, "Total: %.2f\nPaid: %.2f\nBalance due: %.2f\n\nThank you,\n%s",
		invoice.Total, invoice.Paid, invoice.BalanceDue(), business.Name)
	return b.String()
}

func buildInvoiceHTML(name string, invoice *domain.Invoice, business *domain.Business) string {
	var rows strings.Builder
	for _, item := range invoice.Items {
		fmt.Fprintf(&rows,
			`<tr><td style="padding: 6px 12px; border-bottom: 1px solid #eee;">%s</td><td style="padding: 6px 12px; border-bottom: 1px solid #eee; text-align: right;">%g %s</td><td style="padding: 6px 12px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td></tr>`,
			item.Name, item.Qty, item.Unit, item.Amount)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Hi %s,</p>
  <p>%s has issued invoice %s dated %s.</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    %s
  </table>
  <p style="text-align: right; font-size: 16px;"><strong>Total: %.2f</strong></p>
  <p style="text-align: right; color: #666;">Paid: %.2f &middot; Balance due: %.2f</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, invoice.InvoiceNo, name, business.Name, invoice.InvoiceNo, invoice.Date,
		rows.String(), invoice.Total, invoice.Paid, invoice.BalanceDue(), business.Name)
}

func buildReceiptHTML(name string, invoice *domain.Invoice, payment *domain.Payment, business *domain.Business) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Payment received</h2>
  <p>Hi %s,</p>
  <p>%s has recorded a payment of <strong>%.2f</strong> (%s) against invoice %s on %s.</p>
  <p>Outstanding balance: <strong>%.2f</strong></p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, name, business.Name, payment.Amount, payment.Method, invoice.InvoiceNo, payment.Date,
		invoice.BalanceDue(), business.Name)
}
