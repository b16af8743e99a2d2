package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
	"billbook/mocks"
)

func TestProductService_AdjustStock_Directions(t *testing.T) {
	productRepo := new(mocks.MockProductRepo)
	svc := NewProductService(productRepo)
	businessID := uuid.New()
	productID := uuid.New()

	productRepo.On("AdjustStock", mock.Anything, businessID, productID, 5).
		Return(&domain.Product{ID: productID, Stock: 15}, nil).Once()
	productRepo.On("AdjustStock", mock.Anything, businessID, productID, -5).
		Return(&domain.Product{ID: productID, Stock: 10}, nil).Once()

	got, err := svc.AdjustStock(context.Background(), businessID, productID, StockAdjustmentInput{Qty: 5, Direction: "in"})
	require.NoError(t, err)
	assert.Equal(t, 15, got.Stock)

	got, err = svc.AdjustStock(context.Background(), businessID, productID, StockAdjustmentInput{Qty: 5, Direction: "out"})
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
}

func TestProductService_AdjustStock_RejectsBadInput(t *testing.T) {
	svc := NewProductService(new(mocks.MockProductRepo))

	_, err := svc.AdjustStock(context.Background(), uuid.New(), uuid.New(), StockAdjustmentInput{Qty: 0, Direction: "in"})
	assert.ErrorIs(t, err, domain.ErrInvalidStockAmount)

	_, err = svc.AdjustStock(context.Background(), uuid.New(), uuid.New(), StockAdjustmentInput{Qty: 5, Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidStockAmount)
}

func TestProductService_LowStock(t *testing.T) {
	productRepo := new(mocks.MockProductRepo)
	svc := NewProductService(productRepo)
	businessID := uuid.New()

	productRepo.On("List", mock.Anything, businessID).Return([]domain.Product{
		{Name: "Low", Stock: 2, MinStock: 5, Active: true},
		{Name: "Fine", Stock: 50, MinStock: 5, Active: true},
		{Name: "Inactive", Stock: 0, MinStock: 5, Active: false},
	}, nil)

	low, err := svc.LowStock(context.Background(), businessID)

	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Low", low[0].Name)
}

func TestProductService_Update_DoesNotTouchStock(t *testing.T) {
	productRepo := new(mocks.MockProductRepo)
	svc := NewProductService(productRepo)
	businessID := uuid.New()
	productID := uuid.New()

	productRepo.On("GetByID", mock.Anything, businessID, productID).
		Return(&domain.Product{ID: productID, BusinessID: businessID, Name: "Widget", Stock: 42}, nil)
	productRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	got, err := svc.Update(context.Background(), businessID, productID, ProductInput{
		Name:  "Widget v2",
		Stock: 7, // ignored
	})

	require.NoError(t, err)
	assert.Equal(t, "Widget v2", got.Name)
	assert.Equal(t, 42, got.Stock)
}
