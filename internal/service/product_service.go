package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

// ProductInput is the DTO for creating or updating a product.
type ProductInput struct {
	Name          string  `json:"name" binding:"required"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Unit          string  `json:"unit"`
	SalePrice     float64 `json:"salePrice"`
	PurchasePrice float64 `json:"purchasePrice"`
	Stock         int     `json:"stock"`
	MinStock      int     `json:"minStock"`
	TaxRate       float64 `json:"taxRate"`
	Active        bool    `json:"active"`
}

// StockAdjustmentInput is the DTO for a stock in/out movement.
type StockAdjustmentInput struct {
	Qty       int    `json:"qty" binding:"required"`
	Direction string `json:"direction" binding:"required"` // "in" or "out"
}

// ProductService defines the catalog contract.
type ProductService interface {
	Create(ctx context.Context, businessID uuid.UUID, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, businessID, productID uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, businessID uuid.UUID) ([]domain.Product, error)
	LowStock(ctx context.Context, businessID uuid.UUID) ([]domain.Product, error)
	Update(ctx context.Context, businessID, productID uuid.UUID, input ProductInput) (*domain.Product, error)
	AdjustStock(ctx context.Context, businessID, productID uuid.UUID, input StockAdjustmentInput) (*domain.Product, error)
	Delete(ctx context.Context, businessID, productID uuid.UUID) error
}

type productService struct {
	productRepo port.ProductRepository
}

// NewProductService creates a new ProductService implementation.
func NewProductService(productRepo port.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, businessID uuid.UUID, input ProductInput) (*domain.Product, error) {
	stock := input.Stock
	if stock < 0 {
		stock = 0
	}
	product := &domain.Product{
		BusinessID:    businessID,
		Name:          input.Name,
		SKU:           input.SKU,
		Category:      input.Category,
		Unit:          input.Unit,
		SalePrice:     input.SalePrice,
		PurchasePrice: input.PurchasePrice,
		Stock:         stock,
		MinStock:      input.MinStock,
		TaxRate:       input.TaxRate,
		Active:        input.Active,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("product.Create: %w", err)
	}
	return product, nil
}

func (s *productService) Get(ctx context.Context, businessID, productID uuid.UUID) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, businessID, productID)
}

func (s *productService) List(ctx context.Context, businessID uuid.UUID) ([]domain.Product, error) {
	return s.productRepo.List(ctx, businessID)
}

// LowStock lists active products at or below their minimum stock level.
func (s *productService) LowStock(ctx context.Context, businessID uuid.UUID) ([]domain.Product, error) {
	products, err := s.productRepo.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	low := make([]domain.Product, 0)
	for _, p := range products {
		if p.Active && p.Stock <= p.MinStock {
			low = append(low, p)
		}
	}
	return low, nil
}

func (s *productService) Update(ctx context.Context, businessID, productID uuid.UUID, input ProductInput) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.SKU = input.SKU
	product.Category = input.Category
	product.Unit = input.Unit
	product.SalePrice = input.SalePrice
	product.PurchasePrice = input.PurchasePrice
	product.MinStock = input.MinStock
	product.TaxRate = input.TaxRate
	product.Active = input.Active
	// Stock is not updated here; use AdjustStock so movements are explicit.

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("product.Update: %w", err)
	}
	return product, nil
}

func (s *productService) AdjustStock(ctx context.Context, businessID, productID uuid.UUID, input StockAdjustmentInput) (*domain.Product, error) {
	if input.Qty <= 0 {
		return nil, domain.ErrInvalidStockAmount
	}
	delta := input.Qty
	if input.Direction == "out" {
		delta = -delta
	} else if input.Direction != "in" {
		return nil, domain.ErrInvalidStockAmount
	}
	return s.productRepo.AdjustStock(ctx, businessID, productID, delta)
}

func (s *productService) Delete(ctx context.Context, businessID, productID uuid.UUID) error {
	return s.productRepo.Delete(ctx, businessID, productID)
}
