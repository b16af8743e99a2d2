package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type contactRepo struct {
	db *sqlx.DB
}

// NewContactRepo creates a new PostgreSQL-backed ContactRepository.
func NewContactRepo(db *sqlx.DB) port.ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	query := `INSERT INTO contacts (id, business_id, name, phone, email, tax_id, address, type, color_idx, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		contact.ID, contact.BusinessID, contact.Name, contact.Phone, contact.Email,
		contact.TaxID, contact.Address, contact.Type, contact.ColorIdx,
		contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("contactRepo.Create: %w", err)
	}
	return nil
}

func (r *contactRepo) GetByID(ctx context.Context, businessID, contactID uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.GetContext(ctx, &contact,
		"SELECT * FROM contacts WHERE id = $1 AND business_id = $2", contactID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("contactRepo.GetByID: %w", err)
	}
	return &contact, nil
}

func (r *contactRepo) List(ctx context.Context, businessID uuid.UUID) ([]domain.Contact, error) {
	contacts := []domain.Contact{}
	err := r.db.SelectContext(ctx, &contacts,
		"SELECT * FROM contacts WHERE business_id = $1 ORDER BY created_at DESC", businessID)
	if err != nil {
		return nil, fmt.Errorf("contactRepo.List: %w", err)
	}
	return contacts, nil
}

func (r *contactRepo) Count(ctx context.Context, businessID uuid.UUID) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM contacts WHERE business_id = $1", businessID)
	if err != nil {
		return 0, fmt.Errorf("contactRepo.Count: %w", err)
	}
	return total, nil
}

func (r *contactRepo) Update(ctx context.Context, contact *domain.Contact) error {
	contact.UpdatedAt = time.Now().UTC()
	query := `UPDATE contacts SET name = $1, phone = $2, email = $3, tax_id = $4, address = $5, type = $6, updated_at = $7
		WHERE id = $8 AND business_id = $9`
	result, err := r.db.ExecContext(ctx, query,
		contact.Name, contact.Phone, contact.Email, contact.TaxID, contact.Address,
		contact.Type, contact.UpdatedAt, contact.ID, contact.BusinessID)
	if err != nil {
		return fmt.Errorf("contactRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *contactRepo) Delete(ctx context.Context, businessID, contactID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM contacts WHERE id = $1 AND business_id = $2", contactID, businessID)
	if err != nil {
		return fmt.Errorf("contactRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
