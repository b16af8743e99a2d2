package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"billbook/internal/domain"
	"billbook/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Warning string      `json:"warning,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondWithWarning sends a success response carrying a non-fatal warning.
func RespondWithWarning(c *gin.Context, status int, data interface{}, warning string) {
	c.JSON(status, APIResponse{Success: true, Data: data, Warning: warning})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already registered"
	case errors.Is(err, domain.ErrCustomerRequired):
		return http.StatusBadRequest, "CUSTOMER_REQUIRED", "invoice requires an existing customer"
	case errors.Is(err, domain.ErrItemsRequired):
		return http.StatusBadRequest, "ITEMS_REQUIRED", "invoice requires at least one line item"
	case errors.Is(err, domain.ErrInvalidLineItem):
		return http.StatusBadRequest, "INVALID_LINE_ITEM", "line item quantity must be positive and price non-negative"
	case errors.Is(err, domain.ErrInvalidDiscount):
		return http.StatusBadRequest, "INVALID_DISCOUNT", "discount must be between zero and the subtotal"
	case errors.Is(err, domain.ErrInvalidPayment):
		return http.StatusBadRequest, "INVALID_PAYMENT", "payment amount must be positive"
	case errors.Is(err, domain.ErrInvalidMethod):
		return http.StatusBadRequest, "INVALID_METHOD", "invalid payment method; allowed: cash, bank, cheque, online"
	case errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound, "PAYMENT_NOT_FOUND", "payment not found on invoice"
	case errors.Is(err, domain.ErrInvalidStockAmount):
		return http.StatusBadRequest, "INVALID_STOCK_AMOUNT", "stock adjustment quantity must be positive"
	case errors.Is(err, domain.ErrBackupUploadFailed):
		return http.StatusBadGateway, "BACKUP_UPLOAD_FAILED", "backup upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts business ID and user ID from the request
// context. Returns false if auth context is missing (error response already
// written).
func extractAuthContext(c *gin.Context) (businessID, userID uuid.UUID, ok bool) {
	var err error
	businessID, err = middleware.GetBusinessID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing business context")
		return uuid.Nil, uuid.Nil, false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, false
	}
	return businessID, userID, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("internal error")
	}
	RespondError(c, status, code, msg)
}
