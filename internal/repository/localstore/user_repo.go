package localstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type userRepo struct {
	store *Store
}

// NewUserRepo creates a file-backed UserRepository.
func NewUserRepo(store *Store) port.UserRepository {
	return &userRepo{store: store}
}

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.User
	if err := r.store.read(keyAuth, &all); err != nil {
		return err
	}
	for i := range all {
		if strings.EqualFold(all[i].Email, user.Email) {
			return domain.ErrDuplicateEmail
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	all = append(all, *user)
	return r.store.write(keyAuth, all)
}

func (r *userRepo) GetByID(_ context.Context, businessID, userID uuid.UUID) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.User
	if err := r.store.read(keyAuth, &all); err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == userID && all[i].BusinessID == businessID {
			u := all[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.User
	if err := r.store.read(keyAuth, &all); err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Email, email) {
			u := all[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []domain.User
	if err := r.store.read(keyAuth, &all); err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == user.ID && all[i].BusinessID == user.BusinessID {
			user.CreatedAt = all[i].CreatedAt
			user.UpdatedAt = time.Now().UTC()
			all[i] = *user
			return r.store.write(keyAuth, all)
		}
	}
	return domain.ErrNotFound
}
