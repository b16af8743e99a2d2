package handler

import (
	"github.com/gin-gonic/gin"

	"billbook/internal/service"
)

// DashboardHandler serves the aggregated dashboard view.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview handles GET /api/v1/dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	overview, err := h.dashboardService.Overview(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, overview)
}
