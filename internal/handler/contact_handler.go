package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billbook/internal/service"
)

// ContactHandler handles customer and supplier endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create handles POST /api/v1/customers
func (h *ContactHandler) Create(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), businessID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, contact)
}

// Get handles GET /api/v1/customers/:id
func (h *ContactHandler) Get(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contact ID")
		return
	}

	contact, err := h.contactService.Get(c.Request.Context(), businessID, contactID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, contact)
}

// List handles GET /api/v1/customers
//
// With ?balances=true each contact carries its billed/paid rollup.
func (h *ContactHandler) List(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	if c.Query("balances") == "true" {
		contacts, err := h.contactService.ListWithBalances(c.Request.Context(), businessID)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, contacts)
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, contacts)
}

// Balance handles GET /api/v1/customers/:id/balance
func (h *ContactHandler) Balance(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contact ID")
		return
	}

	rollup, err := h.contactService.Balance(c.Request.Context(), businessID, contactID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rollup)
}

// Update handles PUT /api/v1/customers/:id
func (h *ContactHandler) Update(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contact ID")
		return
	}

	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), businessID, contactID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, contact)
}

// Delete handles DELETE /api/v1/customers/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contact ID")
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), businessID, contactID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
