package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeProductVanished   = "PRODUCT_VANISHED"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeIndexOutOfRange   = "INDEX_OUT_OF_RANGE"
	ErrCodeDuplicatePhone    = "DUPLICATE_PHONE"
	ErrCodeStoreError        = "STORE_ERROR"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure. Two domain errors match under
// errors.Is when their codes are equal, so detail-bearing instances built by
// the constructors below compare equal to the sentinels.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least 1")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductVanished   = NewDomainError(ErrCodeProductVanished, "Product no longer exists, reload the catalog")
	ErrInsufficientStock = NewDomainError(ErrCodeInsufficientStock, "Not enough stock")
	ErrMissingField      = NewDomainError(ErrCodeMissingField, "Required field is missing")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrIndexOutOfRange   = NewDomainError(ErrCodeIndexOutOfRange, "Cart line index out of range")
	ErrDuplicatePhone    = NewDomainError(ErrCodeDuplicatePhone, "Phone number already belongs to another customer")
)

// InsufficientStockError reports which product ran short and how much is left,
// so the operator gets actionable detail rather than a bare code.
func InsufficientStockError(name string, available int) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock,
		fmt.Sprintf("Not enough stock for %q: %d left", name, available))
}

// ProductVanishedError reports a product that disappeared from the store
// between cart building and checkout.
func ProductVanishedError(name string) *DomainError {
	return NewDomainError(ErrCodeProductVanished,
		fmt.Sprintf("Product %q no longer exists, reload the catalog", name))
}

// MissingFieldError names the missing required field.
func MissingFieldError(field string) *DomainError {
	return NewDomainError(ErrCodeMissingField,
		fmt.Sprintf("Required field %q is missing", field))
}

// StoreError wraps a transport or store-side failure, surfacing the store's
// response verbatim.
func StoreError(detail string) *DomainError {
	return NewDomainError(ErrCodeStoreError, detail)
}

// ErrStore is the sentinel for matching any store failure via errors.Is.
var ErrStore = NewDomainError(ErrCodeStoreError, "Store request failed")

// ValidationError reports a rejected record field on the management surface
// (product and content forms), outside the checkout taxonomy.
func ValidationError(detail string) *DomainError {
	return NewDomainError(ErrCodeValidation, detail)
}

// NotFoundError reports a missing record on the management surface.
func NotFoundError(what string) *DomainError {
	return NewDomainError(ErrCodeNotFound, what+" not found")
}

// Sentinels for the management-surface codes.
var (
	ErrValidation = NewDomainError(ErrCodeValidation, "Validation failed")
	ErrNotFound   = NewDomainError(ErrCodeNotFound, "Record not found")
)
