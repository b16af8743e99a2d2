package domain

import (
	"time"

	"github.com/google/uuid"
)

// Business is the profile of the operating business. It plays the tenant
// role: every other record carries its ID.
type Business struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	TaxID         string    `db:"tax_id" json:"taxId"`
	TaxLabel      string    `db:"tax_label" json:"taxLabel"`
	TaxRate       float64   `db:"tax_rate" json:"taxRate"`
	Phone         string    `db:"phone" json:"phone"`
	Email         string    `db:"email" json:"email"`
	Address       string    `db:"address" json:"address"`
	Country       string    `db:"country" json:"country"`
	InvoicePrefix string    `db:"invoice_prefix" json:"invoicePrefix"`
	CurrencyCode  string    `db:"currency_code" json:"currencyCode"`
	DateFormat    string    `db:"date_format" json:"dateFormat"`
	InvoiceColor  string    `db:"invoice_color" json:"invoiceColor"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// User is the authenticated operator of a business.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	BusinessID   uuid.UUID `db:"business_id" json:"businessId"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"fullName"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Contact is a customer or supplier. Invoices reference it weakly by ID:
// deleting a contact leaves its invoices untouched (they keep the name
// snapshot and render "Unknown" if it is empty).
type Contact struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	BusinessID uuid.UUID   `db:"business_id" json:"businessId"`
	Name       string      `db:"name" json:"name"`
	Phone      string      `db:"phone" json:"phone"`
	Email      string      `db:"email" json:"email"`
	TaxID      string      `db:"tax_id" json:"gst"`
	Address    string      `db:"address" json:"address"`
	Type       ContactType `db:"type" json:"type"`
	ColorIdx   int         `db:"color_idx" json:"colorIdx"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}

// Product is a catalog entry. Stock changes only through explicit
// stock adjustments, never as a side effect of invoicing.
type Product struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BusinessID    uuid.UUID `db:"business_id" json:"businessId"`
	Name          string    `db:"name" json:"name"`
	SKU           string    `db:"sku" json:"sku"`
	Category      string    `db:"category" json:"category"`
	Unit          string    `db:"unit" json:"unit"`
	SalePrice     float64   `db:"sale_price" json:"salePrice"`
	PurchasePrice float64   `db:"purchase_price" json:"purchasePrice"`
	Stock         int       `db:"stock" json:"stock"`
	MinStock      int       `db:"min_stock" json:"minStock"`
	TaxRate       float64   `db:"tax_rate" json:"taxRate"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// LineItem is one invoice line. Name, unit, price and tax rate are copied
// from the product at add time; later product edits do not touch it.
type LineItem struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Qty       float64   `json:"qty"`
	Price     float64   `json:"price"`
	TaxRate   float64   `json:"taxRate"`
	Amount    float64   `json:"amount"`
}

// Payment is money received against one invoice. Immutable once recorded;
// the only permitted mutation is deletion.
type Payment struct {
	ID        uuid.UUID     `json:"id"`
	InvoiceID uuid.UUID     `json:"invoiceId"`
	Date      string        `json:"date"`
	Amount    float64       `json:"amount"`
	Method    PaymentMethod `json:"method"`
	Note      string        `json:"note"`
}

// Invoice is the aggregate document. Paid, Status, Subtotal, TaxAmount and
// Total are write-through snapshots of the reconciliation over Items and
// Payments; the payments list is the source of truth and the snapshot is
// recomputed on every mutation.
type Invoice struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	BusinessID uuid.UUID     `db:"business_id" json:"businessId"`
	InvoiceNo  string        `db:"invoice_no" json:"invoiceNo"`
	Sequence   int           `db:"sequence" json:"sequence"`
	Date       string        `db:"date" json:"date"`
	CustomerID uuid.UUID     `db:"customer_id" json:"customerId"`
	Customer   string        `db:"customer" json:"customer"`
	Items      []LineItem    `json:"items"`
	Discount   float64       `db:"discount" json:"discount"`
	TaxEnabled bool          `db:"tax_enabled" json:"taxEnabled"`
	Notes      string        `db:"notes" json:"notes"`
	Paid       float64       `db:"paid" json:"paid"`
	Payments   []Payment     `json:"payments"`
	Status     InvoiceStatus `db:"status" json:"status"`
	Subtotal   float64       `db:"subtotal" json:"subtotal"`
	TaxAmount  float64       `db:"tax_amount" json:"taxAmount"`
	Total      float64       `db:"total" json:"total"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}

// CustomerName returns the denormalized customer name, falling back to
// "Unknown" when the contact was deleted before the snapshot was taken.
func (i *Invoice) CustomerName() string {
	if i.Customer == "" {
		return "Unknown"
	}
	return i.Customer
}

// BalanceDue is the outstanding amount, floored at zero.
func (i *Invoice) BalanceDue() float64 {
	due := i.Total - i.Paid
	if due < 0 {
		return 0
	}
	return due
}
