package localstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type businessRepo struct {
	store *Store
}

// NewBusinessRepo creates a file-backed BusinessRepository.
func NewBusinessRepo(store *Store) port.BusinessRepository {
	return &businessRepo{store: store}
}

func (r *businessRepo) Create(_ context.Context, business *domain.Business) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Business
	if err := r.store.read(keyBusiness, &all); err != nil {
		return err
	}

	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}
	now := time.Now().UTC()
	business.CreatedAt = now
	business.UpdatedAt = now

	all = append(all, *business)
	return r.store.write(keyBusiness, all)
}

func (r *businessRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Business, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Business
	if err := r.store.read(keyBusiness, &all); err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			b := all[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *businessRepo) Update(_ context.Context, business *domain.Business) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Business
	if err := r.store.read(keyBusiness, &all); err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == business.ID {
			business.CreatedAt = all[i].CreatedAt
			business.UpdatedAt = time.Now().UTC()
			all[i] = *business
			return r.store.write(keyBusiness, all)
		}
	}
	return domain.ErrNotFound
}
