package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error so callers can decide how to react.
// Only KindConflict is safe to retry automatically; validation and
// domain errors require the caller to change the request.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDomain     Kind = "domain"
	KindConflict   Kind = "conflict"
	KindTransport  Kind = "transport"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindDomain, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindTransport, Message: "Internal server error"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindValidation, Message: "Unprocessable entity"}

	// Conflict means the stored record changed underneath the caller.
	// Refetch and retry; all other kinds are not retryable.
	ErrConflict = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Record was modified concurrently, refetch and retry"}
)

// Domain invariant errors for the order and payment lifecycle
var (
	ErrInvalidTransition       = &AppError{Code: http.StatusConflict, Kind: KindDomain, Message: "Illegal order status transition"}
	ErrOrderLocked             = &AppError{Code: http.StatusConflict, Kind: KindDomain, Message: "Order status does not allow line mutations"}
	ErrLineNotFound            = &AppError{Code: http.StatusNotFound, Kind: KindDomain, Message: "Order has no line item for that product"}
	ErrLineAlreadyVoided       = &AppError{Code: http.StatusConflict, Kind: KindDomain, Message: "Line item is already converted to cash"}
	ErrLineNotVoided           = &AppError{Code: http.StatusConflict, Kind: KindDomain, Message: "Line item is not converted to cash"}
	ErrConsolidationMismatch   = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindDomain, Message: "Consolidated payment amount does not equal the sum of its order shares"}
	ErrInvalidPaymentStatus    = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindDomain, Message: "Status is not valid for this payment method and direction"}
	ErrInvalidStatusTransition = &AppError{Code: http.StatusConflict, Kind: KindDomain, Message: "Payment status can only move forward"}
	ErrInsufficientTender      = &AppError{Code: http.StatusBadRequest, Kind: KindDomain, Message: "Tendered cash is less than the total due"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindDomain,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsRetryable reports whether the caller may retry the same request
// unchanged. Only concurrent-update conflicts qualify.
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == KindConflict
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindTransport,
		Message: err.Error(),
	}
}
