package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"billbook/internal/domain"
	"billbook/internal/ledger"
	"billbook/internal/port"
)

// LineItemInput is one invoice line as submitted by the client. Amount is
// never accepted from the client; it is always recomputed.
type LineItemInput struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name" binding:"required"`
	Unit      string    `json:"unit"`
	Qty       float64   `json:"qty" binding:"required"`
	Price     float64   `json:"price"`
	TaxRate   float64   `json:"taxRate"`
}

// PaymentInput is the DTO for recording a payment.
type PaymentInput struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
	Note   string  `json:"note"`
}

// CreateInvoiceInput is the DTO for creating an invoice.
type CreateInvoiceInput struct {
	Date           string          `json:"date"`
	CustomerID     uuid.UUID       `json:"customerId"`
	Items          []LineItemInput `json:"items"`
	Discount       float64         `json:"discount"`
	TaxEnabled     bool            `json:"taxEnabled"`
	Notes          string          `json:"notes"`
	InitialPayment *PaymentInput   `json:"initialPayment"`
}

// UpdateInvoiceInput is the DTO for replacing an invoice's editable fields.
// The invoice number, sequence and payments are not editable this way.
type UpdateInvoiceInput struct {
	Date       string          `json:"date"`
	CustomerID uuid.UUID       `json:"customerId"`
	Items      []LineItemInput `json:"items"`
	Discount   float64         `json:"discount"`
	TaxEnabled bool            `json:"taxEnabled"`
	Notes      string          `json:"notes"`
}

// InvoiceFilter narrows List results.
type InvoiceFilter struct {
	Status string
	Search string
}

// InvoiceSummary aggregates the listed invoices.
type InvoiceSummary struct {
	Count       int     `json:"count"`
	TotalBilled float64 `json:"totalBilled"`
	TotalPaid   float64 `json:"totalPaid"`
	TotalDue    float64 `json:"totalDue"`
}

// InvoiceService defines the invoice lifecycle contract.
type InvoiceService interface {
	Create(ctx context.Context, businessID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, string, error)
	Get(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, businessID uuid.UUID, filter InvoiceFilter) ([]domain.Invoice, *InvoiceSummary, error)
	UpdateItems(ctx context.Context, businessID, invoiceID uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, businessID, invoiceID uuid.UUID) error
	RecordPayment(ctx context.Context, businessID, invoiceID uuid.UUID, input PaymentInput) (*domain.Invoice, string, error)
	DeletePayment(ctx context.Context, businessID, invoiceID, paymentID uuid.UUID) (*domain.Invoice, error)
	Send(ctx context.Context, businessID, invoiceID uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	contactRepo  port.ContactRepository
	businessRepo port.BusinessRepository
	sequenceRepo port.SequenceRepository
	emailSender  port.EmailSender
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	contactRepo port.ContactRepository,
	businessRepo port.BusinessRepository,
	sequenceRepo port.SequenceRepository,
	emailSender port.EmailSender,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		contactRepo:  contactRepo,
		businessRepo: businessRepo,
		sequenceRepo: sequenceRepo,
		emailSender:  emailSender,
	}
}

func (s *invoiceService) Create(ctx context.Context, businessID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, string, error) {
	if input.CustomerID == uuid.Nil {
		return nil, "", domain.ErrCustomerRequired
	}
	items, err := buildItems(input.Items)
	if err != nil {
		return nil, "", err
	}
	if err := validateDiscount(input.Discount, items); err != nil {
		return nil, "", err
	}

	contact, err := s.contactRepo.GetByID(ctx, businessID, input.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrCustomerRequired
		}
		return nil, "", fmt.Errorf("invoice.Create: %w", err)
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, "", fmt.Errorf("invoice.Create: %w", err)
	}

	date := input.Date
	if date == "" {
		date = time.Now().UTC().Format(domain.DateLayout)
	}

	seq, err := s.sequenceRepo.Next(ctx, businessID)
	if err != nil {
		return nil, "", fmt.Errorf("invoice.Create: %w", err)
	}

	invoice := &domain.Invoice{
		BusinessID: businessID,
		InvoiceNo:  invoiceNumber(business.InvoicePrefix, date, seq),
		Sequence:   seq,
		Date:       date,
		CustomerID: contact.ID,
		Customer:   contact.Name,
		Items:      items,
		Discount:   input.Discount,
		TaxEnabled: input.TaxEnabled,
		Notes:      input.Notes,
	}

	var warning string
	if input.InitialPayment != nil {
		payment, err := buildPayment(*input.InitialPayment)
		if err != nil {
			return nil, "", err
		}
		invoice.Payments = []domain.Payment{*payment}
	}

	totals := ledger.Apply(invoice)
	if totals.AmountPaid > totals.Total {
		warning = overpaymentWarning(totals.AmountPaid, totals.Total)
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, "", fmt.Errorf("invoice.Create: %w", err)
	}

	log.Info().
		Str("invoice_no", invoice.InvoiceNo).
		Str("business_id", businessID.String()).
		Float64("total", invoice.Total).
		Msg("invoice created")

	return invoice, warning, nil
}

func (s *invoiceService) Get(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, businessID, invoiceID)
}

func (s *invoiceService) List(ctx context.Context, businessID uuid.UUID, filter InvoiceFilter) ([]domain.Invoice, *InvoiceSummary, error) {
	invoices, err := s.invoiceRepo.List(ctx, businessID)
	if err != nil {
		return nil, nil, err
	}

	filtered := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if filter.Status != "" && string(inv.Status) != filter.Status {
			continue
		}
		if filter.Search != "" && !matchesSearch(&inv, filter.Search) {
			continue
		}
		filtered = append(filtered, inv)
	}

	summary := &InvoiceSummary{Count: len(filtered)}
	for _, inv := range filtered {
		summary.TotalBilled += inv.Total
		summary.TotalPaid += inv.Paid
		summary.TotalDue += inv.BalanceDue()
	}

	return filtered, summary, nil
}

func (s *invoiceService) UpdateItems(ctx context.Context, businessID, invoiceID uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}

	items, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}
	if err := validateDiscount(input.Discount, items); err != nil {
		return nil, err
	}

	if input.CustomerID != uuid.Nil && input.CustomerID != invoice.CustomerID {
		contact, err := s.contactRepo.GetByID(ctx, businessID, input.CustomerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrCustomerRequired
			}
			return nil, fmt.Errorf("invoice.UpdateItems: %w", err)
		}
		invoice.CustomerID = contact.ID
		invoice.Customer = contact.Name
	}

	if input.Date != "" {
		invoice.Date = input.Date
	}
	invoice.Items = items
	invoice.Discount = input.Discount
	invoice.TaxEnabled = input.TaxEnabled
	invoice.Notes = input.Notes

	ledger.Apply(invoice)

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("invoice.UpdateItems: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) Delete(ctx context.Context, businessID, invoiceID uuid.UUID) error {
	// The sequence counter is untouched: deleted numbers are never reissued.
	return s.invoiceRepo.Delete(ctx, businessID, invoiceID)
}

func (s *invoiceService) RecordPayment(ctx context.Context, businessID, invoiceID uuid.UUID, input PaymentInput) (*domain.Invoice, string, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, businessID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	payment, err := buildPayment(input)
	if err != nil {
		return nil, "", err
	}
	payment.InvoiceID = invoice.ID
	invoice.Payments = append(invoice.Payments, *payment)

	totals := ledger.Apply(invoice)

	var warning string
	if totals.AmountPaid > totals.Total {
		warning = overpaymentWarning(totals.AmountPaid, totals.Total)
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, "", fmt.Errorf("invoice.RecordPayment: %w", err)
	}

	log.Info().
		Str("invoice_no", invoice.InvoiceNo).
		Float64("amount", payment.Amount).
		Str("method", string(payment.Method)).
		Msg("payment recorded")

	s.sendReceipt(ctx, businessID, invoice, payment)

	return invoice, warning, nil
}

// sendReceipt emails a payment receipt when the customer has an address on
// file. Delivery failure never fails the payment itself.
func (s *invoiceService) sendReceipt(ctx context.Context, businessID uuid.UUID, invoice *domain.Invoice, payment *domain.Payment) {
	if invoice.CustomerID == uuid.Nil {
		return
	}
	contact, err := s.contactRepo.GetByID(ctx, businessID, invoice.CustomerID)
	if err != nil || contact.Email == "" {
		return
	}
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return
	}
	if err := s.emailSender.SendPaymentReceiptEmail(ctx, contact.Email, contact.Name, invoice, payment, business); err != nil {
		log.Warn().Err(err).
			Str("invoice_no", invoice.InvoiceNo).
			Msg("payment receipt email failed")
	}
}

func (s *invoiceService) DeletePayment(ctx context.Context, businessID, invoiceID, paymentID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}

	found := false
	remaining := invoice.Payments[:0]
	for _, p := range invoice.Payments {
		if p.ID == paymentID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return nil, domain.ErrPaymentNotFound
	}
	invoice.Payments = remaining

	ledger.Apply(invoice)

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("invoice.DeletePayment: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) Send(ctx context.Context, businessID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, businessID, invoiceID)
	if err != nil {
		return err
	}
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return fmt.Errorf("invoice.Send: %w", err)
	}
	contact, err := s.contactRepo.GetByID(ctx, businessID, invoice.CustomerID)
	if err != nil {
		return fmt.Errorf("invoice.Send: %w", err)
	}
	if contact.Email == "" {
		return fmt.Errorf("invoice.Send: contact %s has no email address", contact.Name)
	}

	return s.emailSender.SendInvoiceEmail(ctx, contact.Email, contact.Name, invoice, business)
}

// invoiceNumber builds "{prefix}-{year}-{seq}" with the sequence padded to
// three digits (overflow keeps all digits).
func invoiceNumber(prefix, date string, seq int) string {
	year := time.Now().UTC().Year()
	if t, err := time.Parse(domain.DateLayout, date); err == nil {
		year = t.Year()
	}
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}

func overpaymentWarning(paid, total float64) string {
	return fmt.Sprintf("payment total %.2f exceeds invoice total %.2f", paid, total)
}

func buildItems(inputs []LineItemInput) ([]domain.LineItem, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrItemsRequired
	}
	items := make([]domain.LineItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Qty <= 0 || in.Price < 0 || in.TaxRate < 0 {
			return nil, domain.ErrInvalidLineItem
		}
		items = append(items, domain.LineItem{
			ProductID: in.ProductID,
			Name:      in.Name,
			Unit:      in.Unit,
			Qty:       in.Qty,
			Price:     in.Price,
			TaxRate:   in.TaxRate,
		})
	}
	return items, nil
}

func validateDiscount(discount float64, items []domain.LineItem) error {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Qty * it.Price
	}
	if discount < 0 || discount > subtotal {
		return domain.ErrInvalidDiscount
	}
	return nil
}

func buildPayment(input PaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidPayment
	}
	method := domain.PaymentMethod(strings.ToLower(input.Method))
	if method == "" {
		method = domain.MethodCash
	}
	if !domain.ValidPaymentMethods[method] {
		return nil, domain.ErrInvalidMethod
	}
	date := input.Date
	if date == "" {
		date = time.Now().UTC().Format(domain.DateLayout)
	}
	return &domain.Payment{
		ID:     uuid.New(),
		Date:   date,
		Amount: input.Amount,
		Method: method,
		Note:   input.Note,
	}, nil
}

func matchesSearch(inv *domain.Invoice, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(inv.InvoiceNo), needle) ||
		strings.Contains(strings.ToLower(inv.CustomerName()), needle)
}
