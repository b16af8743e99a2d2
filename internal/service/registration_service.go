package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"billbook/internal/domain"
	"billbook/internal/port"
)

// RegisterInput is the DTO for self-registration. Registering creates the
// business profile and its first user in one step.
type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"full_name" binding:"required"`
	BusinessName string `json:"business_name" binding:"required"`
}

// RegisterOutput contains the results of a successful registration.
type RegisterOutput struct {
	User     *domain.User     `json:"user"`
	Business *domain.Business `json:"business"`
	Tokens   *TokenPair       `json:"tokens"`
}

// RegistrationService defines the self-registration contract.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
}

type registrationService struct {
	businessRepo port.BusinessRepository
	userRepo     port.UserRepository
	authSvc      AuthService
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	businessRepo port.BusinessRepository,
	userRepo port.UserRepository,
	authSvc AuthService,
) RegistrationService {
	return &registrationService{
		businessRepo: businessRepo,
		userRepo:     userRepo,
		authSvc:      authSvc,
	}
}

func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	// Create the business profile with default settings
	business := &domain.Business{
		Name:          input.BusinessName,
		TaxLabel:      domain.DefaultTaxLabel,
		TaxRate:       domain.DefaultTaxRate,
		InvoicePrefix: domain.DefaultInvoicePrefix,
		CurrencyCode:  domain.DefaultCurrencyCode,
		DateFormat:    domain.DefaultDateFormat,
		InvoiceColor:  domain.DefaultInvoiceColor,
	}
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, fmt.Errorf("creating business: %w", err)
	}

	user := &domain.User{
		BusinessID:   business.ID,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrDuplicateEmail propagates naturally
	}

	// Generate tokens by logging in
	tokens, err := s.authSvc.Login(ctx, LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	return &RegisterOutput{
		User:     user,
		Business: business,
		Tokens:   tokens,
	}, nil
}
