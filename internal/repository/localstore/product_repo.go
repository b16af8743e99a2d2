package localstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type productRepo struct {
	store *Store
}

// NewProductRepo creates a file-backed ProductRepository.
func NewProductRepo(store *Store) port.ProductRepository {
	return &productRepo{store: store}
}

func (r *productRepo) Create(_ context.Context, product *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Product
	if err := r.store.read(keyProducts, &all); err != nil {
		return err
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	all = append(all, *product)
	if err := r.store.write(keyProducts, all); err != nil {
		return err
	}
	r.store.publish(keyProducts, all)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, businessID, productID uuid.UUID) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Product
	if err := r.store.read(keyProducts, &all); err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == productID && all[i].BusinessID == businessID {
			p := all[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *productRepo) List(_ context.Context, businessID uuid.UUID) ([]domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Product
	if err := r.store.read(keyProducts, &all); err != nil {
		return nil, err
	}
	return filterByBusiness(all, businessID, func(p domain.Product) uuid.UUID { return p.BusinessID }), nil
}

func (r *productRepo) Update(_ context.Context, product *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Product
	if err := r.store.read(keyProducts, &all); err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == product.ID && all[i].BusinessID == product.BusinessID {
			product.CreatedAt = all[i].CreatedAt
			product.UpdatedAt = time.Now().UTC()
			all[i] = *product
			if err := r.store.write(keyProducts, all); err != nil {
				return err
			}
			r.store.publish(keyProducts, all)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *productRepo) AdjustStock(_ context.Context, businessID, productID uuid.UUID, delta int) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Product
	if err := r.store.read(keyProducts, &all); err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == productID && all[i].BusinessID == businessID {
			stock := all[i].Stock + delta
			if stock < 0 {
				stock = 0
			}
			all[i].Stock = stock
			all[i].UpdatedAt = time.Now().UTC()
			if err := r.store.write(keyProducts, all); err != nil {
				return nil, err
			}
			r.store.publish(keyProducts, all)
			p := all[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *productRepo) Delete(_ context.Context, businessID, productID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.Product
	if err := r.store.read(keyProducts, &all); err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == productID && all[i].BusinessID == businessID {
			all = append(all[:i], all[i+1:]...)
			if err := r.store.write(keyProducts, all); err != nil {
				return err
			}
			r.store.publish(keyProducts, all)
			return nil
		}
	}
	return domain.ErrNotFound
}
