package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// invoiceRow mirrors the invoices table. Items and payments live in JSONB
// columns so the aggregate reads and writes in one round trip.
type invoiceRow struct {
	ID         uuid.UUID            `db:"id"`
	BusinessID uuid.UUID            `db:"business_id"`
	InvoiceNo  string               `db:"invoice_no"`
	Sequence   int                  `db:"sequence"`
	Date       string               `db:"date"`
	CustomerID uuid.UUID            `db:"customer_id"`
	Customer   string               `db:"customer"`
	Items      json.RawMessage      `db:"items"`
	Discount   float64              `db:"discount"`
	TaxEnabled bool                 `db:"tax_enabled"`
	Notes      string               `db:"notes"`
	Paid       float64              `db:"paid"`
	Payments   json.RawMessage      `db:"payments"`
	Status     domain.InvoiceStatus `db:"status"`
	Subtotal   float64              `db:"subtotal"`
	TaxAmount  float64              `db:"tax_amount"`
	Total      float64              `db:"total"`
	CreatedAt  time.Time            `db:"created_at"`
	UpdatedAt  time.Time            `db:"updated_at"`
}

func toRow(inv *domain.Invoice) (*invoiceRow, error) {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return nil, fmt.Errorf("marshaling items: %w", err)
	}
	payments, err := json.Marshal(inv.Payments)
	if err != nil {
		return nil, fmt.Errorf("marshaling payments: %w", err)
	}
	return &invoiceRow{
		ID:         inv.ID,
		BusinessID: inv.BusinessID,
		InvoiceNo:  inv.InvoiceNo,
		Sequence:   inv.Sequence,
		Date:       inv.Date,
		CustomerID: inv.CustomerID,
		Customer:   inv.Customer,
		Items:      items,
		Discount:   inv.Discount,
		TaxEnabled: inv.TaxEnabled,
		Notes:      inv.Notes,
		Paid:       inv.Paid,
		Payments:   payments,
		Status:     inv.Status,
		Subtotal:   inv.Subtotal,
		TaxAmount:  inv.TaxAmount,
		Total:      inv.Total,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}, nil
}

func (row *invoiceRow) toDomain() (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID:         row.ID,
		BusinessID: row.BusinessID,
		InvoiceNo:  row.InvoiceNo,
		Sequence:   row.Sequence,
		Date:       row.Date,
		CustomerID: row.CustomerID,
		Customer:   row.Customer,
		Discount:   row.Discount,
		TaxEnabled: row.TaxEnabled,
		Notes:      row.Notes,
		Paid:       row.Paid,
		Status:     row.Status,
		Subtotal:   row.Subtotal,
		TaxAmount:  row.TaxAmount,
		Total:      row.Total,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &inv.Items); err != nil {
			return nil, fmt.Errorf("unmarshaling items: %w", err)
		}
	}
	if len(row.Payments) > 0 {
		if err := json.Unmarshal(row.Payments, &inv.Payments); err != nil {
			return nil, fmt.Errorf("unmarshaling payments: %w", err)
		}
	}
	return inv, nil
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	row, err := toRow(invoice)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	query := `INSERT INTO invoices (id, business_id, invoice_no, sequence, date, customer_id, customer,
		items, discount, tax_enabled, notes, paid, payments, status, subtotal, tax_amount, total,
		created_at, updated_at)
		VALUES (:id, :business_id, :invoice_no, :sequence, :date, :customer_id, :customer,
		:items, :discount, :tax_enabled, :notes, :paid, :payments, :status, :subtotal, :tax_amount, :total,
		:created_at, :updated_at)`

	_, err = r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var row invoiceRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM invoices WHERE id = $1 AND business_id = $2", invoiceID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *invoiceRepo) List(ctx context.Context, businessID uuid.UUID) ([]domain.Invoice, error) {
	var rows []invoiceRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM invoices WHERE business_id = $1 ORDER BY sequence DESC", businessID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.List: %w", err)
	}

	invoices := make([]domain.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("invoiceRepo.List: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, nil
}

func (r *invoiceRepo) ListByCustomer(ctx context.Context, businessID, customerID uuid.UUID) ([]domain.Invoice, error) {
	var rows []invoiceRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM invoices WHERE business_id = $1 AND customer_id = $2 ORDER BY sequence DESC",
		businessID, customerID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByCustomer: %w", err)
	}

	invoices := make([]domain.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("invoiceRepo.ListByCustomer: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, nil
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()

	row, err := toRow(invoice)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}

	query := `UPDATE invoices SET date = :date, customer_id = :customer_id, customer = :customer,
		items = :items, discount = :discount, tax_enabled = :tax_enabled, notes = :notes,
		paid = :paid, payments = :payments, status = :status, subtotal = :subtotal,
		tax_amount = :tax_amount, total = :total, updated_at = :updated_at
		WHERE id = :id AND business_id = :business_id`

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, businessID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE id = $1 AND business_id = $2", invoiceID, businessID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
