package domain

// InvoiceStatus is derived from (total, amountPaid); it is never advanced
// independently of a reconciliation.
type InvoiceStatus string

const (
	StatusUnpaid  InvoiceStatus = "unpaid"
	StatusPartial InvoiceStatus = "partial"
	StatusPaid    InvoiceStatus = "paid"
)

// PaymentMethod is how a payment was received.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodBank   PaymentMethod = "bank"
	MethodCheque PaymentMethod = "cheque"
	MethodOnline PaymentMethod = "online"
)

// ValidPaymentMethods maps the accepted payment method strings.
var ValidPaymentMethods = map[PaymentMethod]bool{
	MethodCash:   true,
	MethodBank:   true,
	MethodCheque: true,
	MethodOnline: true,
}

// ContactType distinguishes customers from suppliers.
type ContactType string

const (
	ContactCustomer ContactType = "customer"
	ContactSupplier ContactType = "supplier"
)

// DateLayout is the storage layout for invoice and payment dates. Display
// formatting (DD/MM/YYYY etc.) is a presentation concern.
const DateLayout = "2006-01-02"

// AvatarColorCount is the size of the contact avatar palette; colorIdx is
// assigned modulo this count.
const AvatarColorCount = 6

// Defaults applied to a newly registered business profile.
const (
	DefaultTaxLabel      = "VAT"
	DefaultTaxRate       = 13.0
	DefaultInvoicePrefix = "INV"
	DefaultCurrencyCode  = "USD"
	DefaultDateFormat    = "DD/MM/YYYY"
	DefaultInvoiceColor  = "#2563eb"
)
