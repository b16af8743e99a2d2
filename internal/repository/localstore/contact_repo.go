package localstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type contactRepo struct {
	store *Store
}

// NewContactRepo creates a file-backed ContactRepository.
func NewContactRepo(store *Store) port.ContactRepository {
	return &contactRepo{store: store}
}

func (r *contactRepo) Create(_ context.Context, contact *domain.Contact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Contact
	if err := r.store.read(keyCustomers, &all); err != nil {
		return err
	}

	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	all = append(all, *contact)
	if err := r.store.write(keyCustomers, all); err != nil {
		return err
	}
	r.store.publish(keyCustomers, all)
	return nil
}

func (r *contactRepo) GetByID(_ context.Context, businessID, contactID uuid.UUID) (*domain.Contact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Contact
	if err := r.store.read(keyCustomers, &all); err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == contactID && all[i].BusinessID == businessID {
			c := all[i]
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *contactRepo) List(_ context.Context, businessID uuid.UUID) ([]domain.Contact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Contact
	if err := r.store.read(keyCustomers, &all); err != nil {
		return nil, err
	}
	return filterByBusiness(all, businessID, func(c domain.Contact) uuid.UUID { return c.BusinessID }), nil
}

func (r *contactRepo) Count(ctx context.Context, businessID uuid.UUID) (int, error) {
	contacts, err := r.List(ctx, businessID)
	if err != nil {
		return 0, err
	}
	return len(contacts), nil
}

func (r *contactRepo) Update(_ context.Context, contact *domain.Contact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Contact
	if err := r.store.read(keyCustomers, &all); err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == contact.ID && all[i].BusinessID == contact.BusinessID {
			contact.CreatedAt = all[i].CreatedAt
			contact.ColorIdx = all[i].ColorIdx
			contact.UpdatedAt = time.Now().UTC()
			all[i] = *contact
			if err := r.store.write(keyCustomers, all); err != nil {
				return err
			}
			r.store.publish(keyCustomers, all)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *contactRepo) Delete(_ context.Context, businessID, contactID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Contact
	if err := r.store.read(keyCustomers, &all); err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == contactID && all[i].BusinessID == businessID {
			all = append(all[:i], all[i+1:]...)
			if err := r.store.write(keyCustomers, all); err != nil {
				return err
			}
			r.store.publish(keyCustomers, all)
			return nil
		}
	}
	return domain.ErrNotFound
}
