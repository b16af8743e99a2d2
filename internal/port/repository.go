package port

import (
	"context"

	"github.com/google/uuid"

	"billbook/internal/domain"
)

// BusinessRepository defines the contract for business profile persistence.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	Update(ctx context.Context, business *domain.Business) error
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, businessID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ContactRepository defines the contract for customer and supplier
// persistence. All query methods include businessID to enforce isolation
// at the data layer.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, businessID, contactID uuid.UUID) (*domain.Contact, error)
	List(ctx context.Context, businessID uuid.UUID) ([]domain.Contact, error)
	Count(ctx context.Context, businessID uuid.UUID) (int, error)
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, businessID, contactID uuid.UUID) error
}

// ProductRepository defines the contract for catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, businessID, productID uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, businessID uuid.UUID) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	AdjustStock(ctx context.Context, businessID, productID uuid.UUID, delta int) (*domain.Product, error)
	Delete(ctx context.Context, businessID, productID uuid.UUID) error
}

// InvoiceRepository defines the contract for invoice persistence. The
// invoice is stored as an aggregate: items and payments travel with it.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, businessID uuid.UUID) ([]domain.Invoice, error)
	ListByCustomer(ctx context.Context, businessID, customerID uuid.UUID) ([]domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	Delete(ctx context.Context, businessID, invoiceID uuid.UUID) error
}

// SequenceRepository hands out invoice sequence numbers. Next must be
// atomic per business and must never hand out the same number twice,
// including after invoice deletions.
type SequenceRepository interface {
	Next(ctx context.Context, businessID uuid.UUID) (int, error)
}
