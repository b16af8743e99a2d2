package xlsxexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"billbook/internal/domain"
)

func TestWriteInvoices(t *testing.T) {
	invoices := []domain.Invoice{
		{
			InvoiceNo: "INV-2025-001",
			Date:      "2025-03-05",
			Customer:  "Acme Traders",
			Status:    domain.StatusPartial,
			Subtotal:  1000,
			TaxAmount: 130,
			Total:     1130,
			Paid:      500,
			Payments:  []domain.Payment{{Amount: 500}},
		},
		{
			InvoiceNo: "INV-2025-002",
			Date:      "2025-03-06",
			Status:    domain.StatusUnpaid,
			Total:     200,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInvoices(&buf, invoices))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Invoice Number", rows[0][0])
	assert.Equal(t, "INV-2025-001", rows[1][0])
	assert.Equal(t, "Acme Traders", rows[1][2])
	assert.Equal(t, "partial", rows[1][3])
	assert.Equal(t, "INV-2025-002", rows[2][0])
	assert.Equal(t, "Unknown", rows[2][2])
}

func TestWriteInvoices_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInvoices(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
