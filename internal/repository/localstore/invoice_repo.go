package localstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type invoiceRepo struct {
	store *Store
}

// NewInvoiceRepo creates a file-backed InvoiceRepository.
func NewInvoiceRepo(store *Store) port.InvoiceRepository {
	return &invoiceRepo{store: store}
}

func (r *invoiceRepo) Create(_ context.Context, invoice *domain.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Invoice
	if err := r.store.read(keyInvoices, &all); err != nil {
		return err
	}

	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	all = append(all, *invoice)
	if err := r.store.write(keyInvoices, all); err != nil {
		return err
	}
	r.store.publish(keyInvoices, all)
	return nil
}

func (r *invoiceRepo) GetByID(_ context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Invoice
	if err := r.store.read(keyInvoices, &all); err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == invoiceID && all[i].BusinessID == businessID {
			inv := all[i]
			return &inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *invoiceRepo) List(_ context.Context, businessID uuid.UUID) ([]domain.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Invoice
	if err := r.store.read(keyInvoices, &all); err != nil {
		return nil, err
	}
	invoices := filterByBusiness(all, businessID, func(i domain.Invoice) uuid.UUID { return i.BusinessID })
	sort.Slice(invoices, func(a, b int) bool { return invoices[a].Sequence > invoices[b].Sequence })
	return invoices, nil
}

func (r *invoiceRepo) ListByCustomer(ctx context.Context, businessID, customerID uuid.UUID) ([]domain.Invoice, error) {
	invoices, err := r.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	out := invoices[:0]
	for _, inv := range invoices {
		if inv.CustomerID == customerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *invoiceRepo) Update(_ context.Context, invoice *domain.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Invoice
	if err := r.store.read(keyInvoices, &all); err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == invoice.ID && all[i].BusinessID == invoice.BusinessID {
			invoice.CreatedAt = all[i].CreatedAt
			invoice.UpdatedAt = time.Now().UTC()
			all[i] = *invoice
			if err := r.store.write(keyInvoices, all); err != nil {
				return err
			}
			r.store.publish(keyInvoices, all)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *invoiceRepo) Delete(_ context.Context, businessID, invoiceID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Invoice
	if err := r.store.read(keyInvoices, &all); err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == invoiceID && all[i].BusinessID == businessID {
			all = append(all[:i], all[i+1:]...)
			if err := r.store.write(keyInvoices, all); err != nil {
				return err
			}
			r.store.publish(keyInvoices, all)
			return nil
		}
	}
	return domain.ErrNotFound
}
