package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"billbook/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (12 columns).
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
	"Created At",
}

// Writer wraps csv.Writer for exporting the invoice register as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		row := invoiceToRow(&invoices[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// invoiceToRow converts a single invoice to a 12-element string slice.
func invoiceToRow(inv *domain.Invoice) []string {
	row := make([]string, len(columns))

	row[0] = inv.InvoiceNo
	row[1] = inv.Date
	row[2] = inv.CustomerName()
	row[3] = string(inv.Status)
	row[4] = formatMoney(inv.Subtotal)
	row[5] = formatMoney(inv.TaxAmount)
	row[6] = formatMoney(inv.Discount)
	row[7] = formatMoney(inv.Total)
	row[8] = formatMoney(inv.Paid)
	row[9] = formatMoney(inv.BalanceDue())
	row[10] = strconv.Itoa(len(inv.Payments))
	row[11] = inv.CreatedAt.Format(time.RFC3339)

	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a business name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_business_name}_invoices_{YYYY-MM-DD}.{ext}
func BuildFilename(businessName, ext string) string {
	sanitized := SanitizeFilename(businessName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_invoices_%s.%s", sanitized, date, ext)
}
