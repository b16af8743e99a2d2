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

type businessRepo struct {
	db *sqlx.DB
}

// NewBusinessRepo creates a new PostgreSQL-backed BusinessRepository.
func NewBusinessRepo(db *sqlx.DB) port.BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, business *domain.Business) error {
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}
	now := time.Now().UTC()
	business.CreatedAt = now
	business.UpdatedAt = now

	query := `INSERT INTO businesses
		(id, name, tax_id, tax_label, tax_rate, phone, email, address, country,
		 invoice_prefix, currency_code, date_format, invoice_color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		business.ID, business.Name, business.TaxID, business.TaxLabel, business.TaxRate,
		business.Phone, business.Email, business.Address, business.Country,
		business.InvoicePrefix, business.CurrencyCode, business.DateFormat, business.InvoiceColor,
		business.CreatedAt, business.UpdatedAt)
	if err != nil {
		return fmt.Errorf("businessRepo.Create: %w", err)
	}
	return nil
}

func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	var business domain.Business
	err := r.db.GetContext(ctx, &business, "SELECT * FROM businesses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("businessRepo.GetByID: %w", err)
	}
	return &business, nil
}

func (r *businessRepo) Update(ctx context.Context, business *domain.Business) error {
	business.UpdatedAt = time.Now().UTC()
	query := `UPDATE businesses SET
		name = $1, tax_id = $2, tax_label = $3, tax_rate = $4, phone = $5, email = $6,
		address = $7, country = $8, invoice_prefix = $9, currency_code = $10,
		date_format = $11, invoice_color = $12, updated_at = $13
		WHERE id = $14`
	result, err := r.db.ExecContext(ctx, query,
		business.Name, business.TaxID, business.TaxLabel, business.TaxRate,
		business.Phone, business.Email, business.Address, business.Country,
		business.InvoicePrefix, business.CurrencyCode, business.DateFormat, business.InvoiceColor,
		business.UpdatedAt, business.ID)
	if err != nil {
		return fmt.Errorf("businessRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
