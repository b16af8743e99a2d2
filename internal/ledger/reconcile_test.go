package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"billbook/internal/domain"
)

func item(qty, price, taxRate float64) domain.LineItem {
	return domain.LineItem{ProductID: uuid.New(), Name: "item", Qty: qty, Price: price, TaxRate: taxRate}
}

func payment(amount float64) domain.Payment {
	return domain.Payment{ID: uuid.New(), Date: "2025-01-15", Amount: amount, Method: domain.MethodCash}
}

func TestReconcile_TaxedInvoiceWithDiscount(t *testing.T) {
	// 2 x 500 @ 13% with a 100 discount.
	items := []domain.LineItem{item(2, 500, 13)}

	got := Reconcile(items, 100, true, nil)

	assert.Equal(t, 1000.0, got.Subtotal)
	assert.Equal(t, 130.0, got.TaxAmount)
	assert.Equal(t, 1030.0, got.Total)
	assert.Equal(t, 0.0, got.AmountPaid)
	assert.Equal(t, 1030.0, got.BalanceDue)
	assert.Equal(t, domain.StatusUnpaid, got.Status)
}

func TestReconcile_TaxDisabledIgnoresLineRates(t *testing.T) {
	items := []domain.LineItem{item(2, 500, 13), item(1, 250, 18)}

	got := Reconcile(items, 0, false, nil)

	assert.Equal(t, 1250.0, got.Subtotal)
	assert.Equal(t, 0.0, got.TaxAmount)
	assert.Equal(t, 1250.0, got.Total)
}

func TestReconcile_MixedTaxRatesPerLine(t *testing.T) {
	items := []domain.LineItem{item(1, 100, 5), item(1, 200, 18)}

	got := Reconcile(items, 0, true, nil)

	assert.Equal(t, 300.0, got.Subtotal)
	assert.InDelta(t, 41.0, got.TaxAmount, 1e-9)
	assert.InDelta(t, 341.0, got.Total, 1e-9)
}

func TestReconcile_PartialThenFullPayment(t *testing.T) {
	items := []domain.LineItem{item(1, 1000, 0)}

	partial := Reconcile(items, 0, false, []domain.Payment{payment(400)})
	assert.Equal(t, domain.StatusPartial, partial.Status)
	assert.Equal(t, 600.0, partial.BalanceDue)

	full := Reconcile(items, 0, false, []domain.Payment{payment(400), payment(600)})
	assert.Equal(t, domain.StatusPaid, full.Status)
	assert.Equal(t, 0.0, full.BalanceDue)
}

func TestReconcile_OverpaymentFloorsBalanceAtZero(t *testing.T) {
	items := []domain.LineItem{item(1, 500, 0)}

	got := Reconcile(items, 0, false, []domain.Payment{payment(700)})

	assert.Equal(t, 700.0, got.AmountPaid)
	assert.Equal(t, 0.0, got.BalanceDue)
	assert.Equal(t, domain.StatusPaid, got.Status)
}

func TestReconcile_DeletingPaymentRegressesStatus(t *testing.T) {
	items := []domain.LineItem{item(1, 1000, 0)}
	payments := []domain.Payment{payment(1000)}

	paid := Reconcile(items, 0, false, payments)
	assert.Equal(t, domain.StatusPaid, paid.Status)

	reverted := Reconcile(items, 0, false, payments[:0])
	assert.Equal(t, domain.StatusUnpaid, reverted.Status)
	assert.Equal(t, 1000.0, reverted.BalanceDue)
}

func TestReconcile_ZeroTotalIsPaid(t *testing.T) {
	// total == 0 with no payments: paid >= total holds.
	got := Reconcile(nil, 0, true, nil)

	assert.Equal(t, 0.0, got.Total)
	assert.Equal(t, domain.StatusPaid, got.Status)
}

func TestReconcile_Idempotent(t *testing.T) {
	items := []domain.LineItem{item(3, 99.5, 13), item(2, 10, 5)}
	payments := []domain.Payment{payment(150), payment(40.25)}

	first := Reconcile(items, 20, true, payments)
	second := Reconcile(items, 20, true, payments)

	assert.Equal(t, first, second)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		paid  float64
		want  domain.InvoiceStatus
	}{
		{"nothing paid", 100, 0, domain.StatusUnpaid},
		{"partly paid", 100, 50, domain.StatusPartial},
		{"exactly paid", 100, 100, domain.StatusPaid},
		{"overpaid", 100, 120, domain.StatusPaid},
		{"zero total", 0, 0, domain.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.total, tt.paid))
		})
	}
}

func TestLineAmounts_RewritesStaleAmounts(t *testing.T) {
	items := []domain.LineItem{{Qty: 2, Price: 50, Amount: 999}}

	got := LineAmounts(items)

	assert.Equal(t, 100.0, got[0].Amount)
	// input slice is untouched
	assert.Equal(t, 999.0, items[0].Amount)
}

func TestApply_WritesSnapshotOntoInvoice(t *testing.T) {
	inv := domain.Invoice{
		Items:      []domain.LineItem{item(2, 500, 13)},
		Discount:   100,
		TaxEnabled: true,
		Payments:   []domain.Payment{payment(500)},
	}

	Apply(&inv)

	assert.Equal(t, 1000.0, inv.Subtotal)
	assert.Equal(t, 130.0, inv.TaxAmount)
	assert.Equal(t, 1030.0, inv.Total)
	assert.Equal(t, 500.0, inv.Paid)
	assert.Equal(t, domain.StatusPartial, inv.Status)
	assert.Equal(t, 1000.0, inv.Items[0].Amount)
	assert.Equal(t, 530.0, inv.BalanceDue())
}

func TestPaidConsistent(t *testing.T) {
	inv := domain.Invoice{
		Items:      []domain.LineItem{item(1, 1000, 0)},
		TaxEnabled: false,
		Payments:   []domain.Payment{payment(400)},
	}
	Apply(&inv)
	assert.True(t, PaidConsistent(inv))

	// tamper with the snapshot without reconciling
	inv.Paid = 999
	assert.False(t, PaidConsistent(inv))
}
