package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"billbook/internal/csvexport"
	"billbook/internal/service"
	"billbook/internal/xlsxexport"
)

// ReportHandler handles report and export endpoints.
type ReportHandler struct {
	reportService   service.ReportService
	businessService service.BusinessService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, businessService service.BusinessService) *ReportHandler {
	return &ReportHandler{reportService: reportService, businessService: businessService}
}

// Monthly handles GET /api/v1/reports/monthly?month=YYYY-MM
//
// An empty month defaults to the current month.
func (h *ReportHandler) Monthly(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	month := c.Query("month")
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'month': must be YYYY-MM")
			return
		}
	}

	report, err := h.reportService.Monthly(c.Request.Context(), businessID, month)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Export handles GET /api/v1/reports/export?format=csv|xlsx
//
// Streams the full invoice register as a file download.
func (h *ReportHandler) Export(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'format': must be csv or xlsx")
		return
	}

	business, err := h.businessService.Get(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}

	invoices, err := h.reportService.InvoiceRegister(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(business.Name, format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := xlsxexport.WriteInvoices(c.Writer, invoices); err != nil {
			log.Error().Err(err).Msg("xlsx export failed mid-stream")
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		log.Error().Err(err).Msg("csv export failed writing BOM")
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Error().Err(err).Msg("csv export failed writing header")
		return
	}
	if err := w.WriteInvoices(invoices); err != nil {
		log.Error().Err(err).Msg("csv export failed mid-stream")
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Error().Err(err).Msg("csv export flush failed")
	}
}
