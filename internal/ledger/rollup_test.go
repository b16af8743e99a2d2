package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"billbook/internal/domain"
)

func invoiceFor(customerID uuid.UUID, total float64, paidAmounts ...float64) domain.Invoice {
	inv := domain.Invoice{
		ID:         uuid.New(),
		CustomerID: customerID,
		Items:      []domain.LineItem{{Qty: 1, Price: total}},
	}
	for _, amt := range paidAmounts {
		inv.Payments = append(inv.Payments, payment(amt))
	}
	Apply(&inv)
	return inv
}

func TestRollupContact(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	invoices := []domain.Invoice{
		invoiceFor(alice, 1000, 400),
		invoiceFor(alice, 500, 500),
		invoiceFor(bob, 2000, 100),
	}
	payments := FlattenPayments(invoices)

	got := RollupContact(invoices, payments, alice)

	assert.Equal(t, 1500.0, got.TotalBilled)
	assert.Equal(t, 900.0, got.TotalPaid)
	assert.Equal(t, 600.0, got.Balance)
}

func TestRollupContact_NoInvoices(t *testing.T) {
	invoices := []domain.Invoice{invoiceFor(uuid.New(), 1000, 400)}
	payments := FlattenPayments(invoices)

	got := RollupContact(invoices, payments, uuid.New())

	assert.Equal(t, Rollup{}, got)
}

func TestRollupContact_OverpaymentYieldsCredit(t *testing.T) {
	carol := uuid.New()
	invoices := []domain.Invoice{invoiceFor(carol, 500, 700)}
	payments := FlattenPayments(invoices)

	got := RollupContact(invoices, payments, carol)

	assert.Equal(t, -200.0, got.Balance)
}

// The join over the payments collection and the sum of per-invoice paid
// snapshots are independent derivations of the same quantity. After
// reconciliation they must agree for every contact.
func TestRollup_AgreesWithPaidSnapshots(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	invoices := []domain.Invoice{
		invoiceFor(alice, 1000, 250, 250),
		invoiceFor(alice, 300),
		invoiceFor(bob, 800, 800),
	}
	payments := FlattenPayments(invoices)

	for _, contactID := range []uuid.UUID{alice, bob} {
		var snapshotSum float64
		for _, inv := range invoices {
			if inv.CustomerID == contactID {
				snapshotSum += inv.Paid
			}
		}
		roll := RollupContact(invoices, payments, contactID)
		assert.Equal(t, snapshotSum, roll.TotalPaid)
	}
}

func TestFlattenPayments_StampsInvoiceID(t *testing.T) {
	inv := invoiceFor(uuid.New(), 100, 50, 25)
	// wipe the stamps to prove Flatten restores them
	inv.Payments[0].InvoiceID = uuid.Nil
	inv.Payments[1].InvoiceID = uuid.Nil

	flat := FlattenPayments([]domain.Invoice{inv})

	assert.Len(t, flat, 2)
	for _, p := range flat {
		assert.Equal(t, inv.ID, p.InvoiceID)
	}
}
