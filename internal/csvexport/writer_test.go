package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 12)
	assert.Equal(t, "Invoice Number", row[0])
	assert.Equal(t, "Customer", row[2])
	assert.Equal(t, "Created At", row[11])
}

func TestWriteInvoices(t *testing.T) {
	createdAt := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	inv := domain.Invoice{
		ID:        uuid.New(),
		InvoiceNo: "INV-2025-001",
		Date:      "2025-03-05",
		Customer:  "Acme Traders",
		Status:    domain.StatusPartial,
		Subtotal:  1000,
		TaxAmount: 130,
		Discount:  100,
		Total:     1030,
		Paid:      500,
		Payments: []domain.Payment{
			{Amount: 300, Method: domain.MethodCash},
			{Amount: 200, Method: domain.MethodBank},
		},
		CreatedAt: createdAt,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.Invoice{inv}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 12)
	assert.Equal(t, "INV-2025-001", row[0])
	assert.Equal(t, "2025-03-05", row[1])
	assert.Equal(t, "Acme Traders", row[2])
	assert.Equal(t, "partial", row[3])
	assert.Equal(t, "1000.00", row[4])
	assert.Equal(t, "130.00", row[5])
	assert.Equal(t, "100.00", row[6])
	assert.Equal(t, "1030.00", row[7])
	assert.Equal(t, "500.00", row[8])
	assert.Equal(t, "530.00", row[9])
	assert.Equal(t, "2", row[10])
	assert.Equal(t, "2025-03-05T08:00:00Z", row[11])
}

func TestWriteInvoices_DeletedContactFallsBackToUnknown(t *testing.T) {
	inv := domain.Invoice{
		InvoiceNo: "INV-2025-002",
		Date:      "2025-03-06",
		Status:    domain.StatusUnpaid,
		CreatedAt: time.Now(),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.Invoice{inv}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "Unknown", row[2])
	assert.Equal(t, "0", row[10])
}

func TestWriteInvoices_MonetaryFormatting(t *testing.T) {
	inv := domain.Invoice{
		InvoiceNo: "INV-2025-003",
		Subtotal:  1000,    // whole number
		TaxAmount: 99.999,  // rounds to 2 decimal places
		Discount:  0.1,     // trailing zero
		Total:     1100.10, // exact
		CreatedAt: time.Now(),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.Invoice{inv}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "1000.00", row[4])
	assert.Equal(t, "100.00", row[5])
	assert.Equal(t, "0.10", row[6])
	assert.Equal(t, "1100.10", row[7])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Sharma Traders", "Sharma_Traders"},
		{"special chars", "FY 2024-25 / Q3 (Oct–Dec)", "FY_2024-25_Q3_Oct_Dec"},
		{"unicode", "कंपनी Store", "Store"},
		{"hyphens and underscores preserved", "my-shop_2025", "my-shop_2025"},
		{"consecutive underscores collapsed", "test___shop", "test_shop"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{
			"long name truncated",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-extra",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrs",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "Sharma_Traders_invoices_"+today+".csv", BuildFilename("Sharma Traders", "csv"))
	assert.Equal(t, "Sharma_Traders_invoices_"+today+".xlsx", BuildFilename("Sharma Traders", "xlsx"))
}
