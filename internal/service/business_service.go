package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

// BusinessInput is the DTO for updating the business profile.
type BusinessInput struct {
	Name          string  `json:"name" binding:"required"`
	TaxID         string  `json:"taxId"`
	TaxLabel      string  `json:"taxLabel"`
	TaxRate       float64 `json:"taxRate"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	Country       string  `json:"country"`
	InvoicePrefix string  `json:"invoicePrefix"`
	CurrencyCode  string  `json:"currencyCode"`
	DateFormat    string  `json:"dateFormat"`
	InvoiceColor  string  `json:"invoiceColor"`
}

// BusinessService defines the business profile contract.
type BusinessService interface {
	Get(ctx context.Context, businessID uuid.UUID) (*domain.Business, error)
	Update(ctx context.Context, businessID uuid.UUID, input BusinessInput) (*domain.Business, error)
}

type businessService struct {
	businessRepo port.BusinessRepository
}

// NewBusinessService creates a new BusinessService implementation.
func NewBusinessService(businessRepo port.BusinessRepository) BusinessService {
	return &businessService{businessRepo: businessRepo}
}

func (s *businessService) Get(ctx context.Context, businessID uuid.UUID) (*domain.Business, error) {
	return s.businessRepo.GetByID(ctx, businessID)
}

func (s *businessService) Update(ctx context.Context, businessID uuid.UUID, input BusinessInput) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	business.Name = input.Name
	business.TaxID = input.TaxID
	business.TaxLabel = input.TaxLabel
	business.TaxRate = input.TaxRate
	business.Phone = input.Phone
	business.Email = input.Email
	business.Address = input.Address
	business.Country = input.Country
	business.CurrencyCode = input.CurrencyCode
	business.DateFormat = input.DateFormat
	business.InvoiceColor = input.InvoiceColor
	// Changing the prefix affects future invoice numbers only.
	if input.InvoicePrefix != "" {
		business.InvoicePrefix = input.InvoicePrefix
	}

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, fmt.Errorf("business.Update: %w", err)
	}
	return business, nil
}
