package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientStock is used when stock cannot cover the request
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeEmptyCart is used when checkout is started from an empty cart
	ErrCodeEmptyCart = "ERR_EMPTY_CART"
	// ErrCodePriceUnavailable is used when a product has no price record
	ErrCodePriceUnavailable = "ERR_PRICE_UNAVAILABLE"
	// ErrCodePriceChanged is used when a price moved between review and confirm
	ErrCodePriceChanged = "ERR_PRICE_CHANGED"
	// ErrCodeProductNotAvailable is used when a product is delisted or unknown
	ErrCodeProductNotAvailable = "ERR_PRODUCT_NOT_AVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:        http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:   http.StatusUnprocessableEntity,
	ErrCodeEmptyCart:           http.StatusUnprocessableEntity,
	ErrCodePriceUnavailable:    http.StatusUnprocessableEntity,
	ErrCodeProductNotAvailable: http.StatusUnprocessableEntity,
	ErrCodePriceChanged:        http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ITEM_NOT_FOUND": ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,

	"CONCURRENT_MODIFICATION": ErrCodeConcurrencyConflict,
	"CONCURRENCY_CONFLICT":    ErrCodeConcurrencyConflict,

	"INVALID_STATE":         ErrCodeInvalidState,
	"EMPTY_CART":            ErrCodeEmptyCart,
	"INSUFFICIENT_STOCK":    ErrCodeInsufficientStock,
	"PRICE_UNAVAILABLE":     ErrCodePriceUnavailable,
	"PRICE_CHANGED":         ErrCodePriceChanged,
	"PRODUCT_NOT_AVAILABLE": ErrCodeProductNotAvailable,
	"PRODUCT_NOT_FOUND":     ErrCodeNotFound,

	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_CART":            ErrCodeInvalidInput,
	"INVALID_CUSTOMER":        ErrCodeInvalidInput,
	"INVALID_PRODUCT":         ErrCodeInvalidInput,
	"INVALID_PRODUCT_NAME":    ErrCodeInvalidInput,
	"INVALID_PRICE":           ErrCodeInvalidInput,
	"INVALID_QUANTITY":        ErrCodeInvalidInput,
	"INVALID_BUYER_INFO":      ErrCodeInvalidInput,
	"INVALID_ADDRESS":         ErrCodeInvalidInput,
	"INVALID_SHIPPING":        ErrCodeInvalidInput,
	"INVALID_SHIPPING_OPTION": ErrCodeInvalidInput,
	"INVALID_PAYMENT":         ErrCodeInvalidInput,
	"INVALID_STEP":            ErrCodeInvalidInput,
	"INVALID_STRATEGY":        ErrCodeInvalidInput,
	"INVALID_ORDER_REFERENCE": ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// Codes already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
