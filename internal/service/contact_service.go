package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/ledger"
	"billbook/internal/port"
)

// ContactInput is the DTO for creating or updating a contact.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	TaxID   string `json:"gst"`
	Address string `json:"address"`
	Type    string `json:"type"`
}

// ContactWithBalance pairs a contact with its ledger rollup.
type ContactWithBalance struct {
	domain.Contact
	ledger.Rollup
}

// ContactService defines the contact book contract.
type ContactService interface {
	Create(ctx context.Context, businessID uuid.UUID, input ContactInput) (*domain.Contact, error)
	Get(ctx context.Context, businessID, contactID uuid.UUID) (*domain.Contact, error)
	List(ctx context.Context, businessID uuid.UUID) ([]domain.Contact, error)
	ListWithBalances(ctx context.Context, businessID uuid.UUID) ([]ContactWithBalance, error)
	Balance(ctx context.Context, businessID, contactID uuid.UUID) (*ledger.Rollup, error)
	Update(ctx context.Context, businessID, contactID uuid.UUID, input ContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, businessID, contactID uuid.UUID) error
}

type contactService struct {
	contactRepo port.ContactRepository
	invoiceRepo port.InvoiceRepository
}

// NewContactService creates a new ContactService implementation.
func NewContactService(contactRepo port.ContactRepository, invoiceRepo port.InvoiceRepository) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *contactService) Create(ctx context.Context, businessID uuid.UUID, input ContactInput) (*domain.Contact, error) {
	count, err := s.contactRepo.Count(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("contact.Create: %w", err)
	}

	contact := &domain.Contact{
		BusinessID: businessID,
		Name:       input.Name,
		Phone:      input.Phone,
		Email:      input.Email,
		TaxID:      input.TaxID,
		Address:    input.Address,
		Type:       contactType(input.Type),
		ColorIdx:   count % domain.AvatarColorCount,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("contact.Create: %w", err)
	}
	return contact, nil
}

func (s *contactService) Get(ctx context.Context, businessID, contactID uuid.UUID) (*domain.Contact, error) {
	return s.contactRepo.GetByID(ctx, businessID, contactID)
}

func (s *contactService) List(ctx context.Context, businessID uuid.UUID) ([]domain.Contact, error) {
	return s.contactRepo.List(ctx, businessID)
}

// ListWithBalances joins every contact against the invoice ledger. One
// invoice scan serves all contacts.
func (s *contactService) ListWithBalances(ctx context.Context, businessID uuid.UUID) ([]ContactWithBalance, error) {
	contacts, err := s.contactRepo.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	payments := ledger.FlattenPayments(invoices)

	out := make([]ContactWithBalance, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, ContactWithBalance{
			Contact: c,
			Rollup:  ledger.RollupContact(invoices, payments, c.ID),
		})
	}
	return out, nil
}

func (s *contactService) Balance(ctx context.Context, businessID, contactID uuid.UUID) (*ledger.Rollup, error) {
	if _, err := s.contactRepo.GetByID(ctx, businessID, contactID); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	rollup := ledger.RollupContact(invoices, ledger.FlattenPayments(invoices), contactID)
	return &rollup, nil
}

func (s *contactService) Update(ctx context.Context, businessID, contactID uuid.UUID, input ContactInput) (*domain.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, businessID, contactID)
	if err != nil {
		return nil, err
	}

	contact.Name = input.Name
	contact.Phone = input.Phone
	contact.Email = input.Email
	contact.TaxID = input.TaxID
	contact.Address = input.Address
	contact.Type = contactType(input.Type)

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("contact.Update: %w", err)
	}
	return contact, nil
}

// Delete removes the contact only. Its invoices keep their name snapshot
// and render "Unknown" where no snapshot exists.
func (s *contactService) Delete(ctx context.Context, businessID, contactID uuid.UUID) error {
	return s.contactRepo.Delete(ctx, businessID, contactID)
}

func contactType(t string) domain.ContactType {
	if domain.ContactType(t) == domain.ContactSupplier {
		return domain.ContactSupplier
	}
	return domain.ContactCustomer
}
