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

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `INSERT INTO products (id, business_id, name, sku, category, unit, sale_price, purchase_price,
		stock, min_stock, tax_rate, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.BusinessID, product.Name, product.SKU, product.Category,
		product.Unit, product.SalePrice, product.PurchasePrice, product.Stock,
		product.MinStock, product.TaxRate, product.Active, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, businessID, productID uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product,
		"SELECT * FROM products WHERE id = $1 AND business_id = $2", productID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, businessID uuid.UUID) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE business_id = $1 ORDER BY created_at DESC", businessID)
	if err != nil {
		return nil, fmt.Errorf("productRepo.List: %w", err)
	}
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()
	query := `UPDATE products SET name = $1, sku = $2, category = $3, unit = $4, sale_price = $5,
		purchase_price = $6, stock = $7, min_stock = $8, tax_rate = $9, active = $10, updated_at = $11
		WHERE id = $12 AND business_id = $13`
	result, err := r.db.ExecContext(ctx, query,
		product.Name, product.SKU, product.Category, product.Unit, product.SalePrice,
		product.PurchasePrice, product.Stock, product.MinStock, product.TaxRate, product.Active,
		product.UpdatedAt, product.ID, product.BusinessID)
	if err != nil {
		return fmt.Errorf("productRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock applies the delta atomically, clamping the result at zero.
func (r *productRepo) AdjustStock(ctx context.Context, businessID, productID uuid.UUID, delta int) (*domain.Product, error) {
	query := `UPDATE products SET stock = GREATEST(0, stock + $1), updated_at = $2
		WHERE id = $3 AND business_id = $4
		RETURNING *`
	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, delta, time.Now().UTC(), productID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("productRepo.AdjustStock: %w", err)
	}
	return &product, nil
}

func (r *productRepo) Delete(ctx context.Context, businessID, productID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM products WHERE id = $1 AND business_id = $2", productID, businessID)
	if err != nil {
		return fmt.Errorf("productRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
