package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrCustomerRequired   = errors.New("invoice requires a customer")
	ErrItemsRequired      = errors.New("invoice requires at least one item")
	ErrInvalidLineItem    = errors.New("line item quantity must be positive and price non-negative")
	ErrInvalidDiscount    = errors.New("discount must be between zero and the subtotal")
	ErrInvalidPayment     = errors.New("payment amount must be positive")
	ErrInvalidMethod      = errors.New("invalid payment method; allowed: cash, bank, cheque, online")
	ErrPaymentNotFound    = errors.New("payment not found on invoice")
	ErrInvalidStockAmount = errors.New("stock adjustment quantity must be positive")
	ErrBackupUploadFailed = errors.New("backup upload to storage failed")
)
