// Package ledger holds the pure invoice arithmetic: reconciliation of an
// invoice's items, discount, tax flag and payments into its canonical totals
// and status, and the per-contact balance rollup. Nothing here touches a
// store; every function is a total recompute over its input.
package ledger

import (
	"github.com/google/uuid"

	"billbook/internal/domain"
)

// Totals is the canonical derived tuple for one invoice.
type Totals struct {
	Subtotal   float64
	TaxAmount  float64
	Total      float64
	AmountPaid float64
	BalanceDue float64
	Status     domain.InvoiceStatus
}

// Reconcile derives the full Totals tuple. It cannot fail: malformed input
// (negative quantities, amounts) is a caller-side validation concern.
// Tax is computed per line so mixed rates within one invoice work.
func Reconcile(items []domain.LineItem, discount float64, taxEnabled bool, payments []domain.Payment) Totals {
	var subtotal, taxAmount float64
	for _, it := range items {
		line := it.Qty * it.Price
		subtotal += line
		if taxEnabled {
			taxAmount += line * it.TaxRate / 100
		}
	}

	total := subtotal - discount + taxAmount
	paid := AmountPaid(payments)

	balance := total - paid
	if balance < 0 {
		balance = 0
	}

	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  taxAmount,
		Total:      total,
		AmountPaid: paid,
		BalanceDue: balance,
		Status:     StatusFor(total, paid),
	}
}

// StatusFor derives the invoice status from (total, amountPaid).
// paid iff amountPaid >= total; unpaid iff amountPaid == 0; else partial.
func StatusFor(total, amountPaid float64) domain.InvoiceStatus {
	switch {
	case amountPaid >= total:
		return domain.StatusPaid
	case amountPaid > 0:
		return domain.StatusPartial
	default:
		return domain.StatusUnpaid
	}
}

// AmountPaid sums the payment list. This is the only sanctioned derivation
// of the paid amount; the stored invoice field is a snapshot of it.
func AmountPaid(payments []domain.Payment) float64 {
	var sum float64
	for _, p := range payments {
		sum += p.Amount
	}
	return sum
}

// LineAmounts rewrites each item's Amount field as qty*price. Stored
// amounts are never trusted across edits.
func LineAmounts(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		it.Amount = it.Qty * it.Price
		out[i] = it
	}
	return out
}

// Apply writes a fresh reconciliation snapshot onto the invoice.
func Apply(inv *domain.Invoice) Totals {
	inv.Items = LineAmounts(inv.Items)
	t := Reconcile(inv.Items, inv.Discount, inv.TaxEnabled, inv.Payments)
	inv.Subtotal = t.Subtotal
	inv.TaxAmount = t.TaxAmount
	inv.Total = t.Total
	inv.Paid = t.AmountPaid
	inv.Status = t.Status
	return t
}

// PaidConsistent reports whether the invoice's stored paid snapshot and
// status agree with a recomputation over its payments list. The two are
// structurally capable of diverging; callers treat false as an invariant
// violation, not an acceptable state.
func PaidConsistent(inv domain.Invoice) bool {
	paid := AmountPaid(inv.Payments)
	return inv.Paid == paid && inv.Status == StatusFor(inv.Total, paid)
}

// FlattenPayments extracts every payment from the given invoices, stamping
// each with its owning invoice ID. This is the join source for rollups.
func FlattenPayments(invoices []domain.Invoice) []domain.Payment {
	var out []domain.Payment
	for _, inv := range invoices {
		for _, p := range inv.Payments {
			p.InvoiceID = inv.ID
			out = append(out, p)
		}
	}
	return out
}

// Rollup aggregates reconciliation results across all invoices of one
// contact. Balance may be negative, which reads as customer credit.
type Rollup struct {
	TotalBilled float64 `json:"totalBilled"`
	TotalPaid   float64 `json:"totalPaid"`
	Balance     float64 `json:"balance"`
}

// RollupContact computes the contact's rollup. TotalPaid is deliberately
// derived by joining the payments collection to the contact's invoices by
// invoiceId rather than by summing invoice paid snapshots, so the two
// bookkeeping paths stay independently checkable.
func RollupContact(invoices []domain.Invoice, payments []domain.Payment, contactID uuid.UUID) Rollup {
	related := make(map[uuid.UUID]bool)
	var billed float64
	for _, inv := range invoices {
		if inv.CustomerID == contactID {
			related[inv.ID] = true
			billed += inv.Total
		}
	}

	var paid float64
	for _, p := range payments {
		if related[p.InvoiceID] {
			paid += p.Amount
		}
	}

	return Rollup{
		TotalBilled: billed,
		TotalPaid:   paid,
		Balance:     billed - paid,
	}
}
