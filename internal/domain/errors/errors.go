package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same business code, so errors
// produced by WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Cart errors
	ErrInvalidQuantity = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		"Quantity must be a positive whole number",
		"",
	)

	ErrEmptyCart = NewBaseError(
		http.StatusUnprocessableEntity,
		"EMPTY_CART",
		"Your cart is empty, add a product before checking out",
		"",
	)

	ErrCartMismatch = NewBaseError(
		http.StatusConflict,
		"CART_MISMATCH",
		"Your cart changed in another session, refresh it and review your order",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"The product does not exist or is no longer sold",
		"",
	)

	// Checkout consistency errors
	ErrQuoteStale = NewBaseError(
		http.StatusConflict,
		"QUOTE_STALE",
		"The selected shipping option is no longer available, request new shipping rates",
		"",
	)

	// ErrInsufficientStock carries the product id in Details.
	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Not enough stock for a product in your cart, reduce the quantity and try again",
		"",
	)

	// Shipping resolution errors
	ErrAddressUnresolvable = NewBaseError(
		http.StatusUnprocessableEntity,
		"ADDRESS_UNRESOLVABLE",
		"The shipping address could not be located, check the street, postal code and country",
		"",
	)

	ErrCarrierUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"CARRIER_UNAVAILABLE",
		"Shipping rates are temporarily unavailable, please try again shortly",
		"",
	)

	ErrCarrierRejected = NewBaseError(
		http.StatusUnprocessableEntity,
		"CARRIER_REJECTED",
		"The carrier rejected the shipment request",
		"",
	)

	// Order errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrShipmentInProgress = NewBaseError(
		http.StatusConflict,
		"SHIPMENT_IN_PROGRESS",
		"A shipment for this order is already being created",
		"",
	)

	ErrShipmentNotRetryable = NewBaseError(
		http.StatusConflict,
		"SHIPMENT_NOT_RETRYABLE",
		"The shipment for this order cannot be requested again",
		"",
	)

	ErrUnsupportedPaymentMethod = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_PAYMENT_METHOD",
		"The selected payment method is not supported",
		"",
	)

	// Webhook errors
	ErrInvalidWebhookSignature = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_WEBHOOK_SIGNATURE",
		"Webhook signature verification failed",
		"",
	)

	ErrUnknownShipmentStatus = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_SHIPMENT_STATUS",
		"Unknown shipment status",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error, please try again later",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed: "+e.details).Error()
}

func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

func (e *DatabaseExecuteError) Message() string {
	return "Internal server error, please try again later"
}

func (e *DatabaseExecuteError) Details() string {
	return e.details
}
