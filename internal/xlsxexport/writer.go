package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"billbook/internal/domain"
)

const sheetName = "Invoices"

// columns defines the sheet header row. It mirrors the CSV register layout.
var columns = []string{
	"Invoice Number",
	"Date",
	"Customer",
	"Status",
	"Subtotal",
	"Tax",
	"Discount",
	"Total",
	"Paid",
	"Balance Due",
	"Payment Count",
}

// WriteInvoices renders the invoice register as a single-sheet workbook and
// writes it to w.
func WriteInvoices(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("xlsxexport.WriteInvoices: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("xlsxexport.WriteInvoices: %w", err)
	}

	for i, h := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("xlsxexport.WriteInvoices: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("xlsxexport.WriteInvoices: %w", err)
		}
	}

	for row, inv := range invoices {
		values := []interface{}{
			inv.InvoiceNo,
			inv.Date,
			inv.CustomerName(),
			string(inv.Status),
			inv.Subtotal,
			inv.TaxAmount,
			inv.Discount,
			inv.Total,
			inv.Paid,
			inv.BalanceDue(),
			len(inv.Payments),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("xlsxexport.WriteInvoices: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("xlsxexport.WriteInvoices: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsxexport.WriteInvoices: %w", err)
	}
	return nil
}
