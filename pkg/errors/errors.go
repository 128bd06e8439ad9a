package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeDuplicate    ErrorType = "duplicate"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeUpstream     ErrorType = "upstream"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeDatabase     ErrorType = "database"
)

// APIError represents a structured API error
type APIError struct {
	Type        ErrorType `json:"type"`
	Code        string    `json:"code"`
	Message     string    `json:"message"`
	Details     string    `json:"details,omitempty"`
	HTTPStatus  int       `json:"-"`
	InternalErr error     `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Message, e.Details, e.Code)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.InternalErr
}

// NewAPIError creates a new API error
func NewAPIError(errorType ErrorType, code, message string, httpStatus int) *APIError {
	return &APIError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// NewAPIErrorWithCause creates a new API error with an underlying cause
func NewAPIErrorWithCause(errorType ErrorType, code, message string, httpStatus int, cause error) *APIError {
	return &APIError{
		Type:        errorType,
		Code:        code,
		Message:     message,
		HTTPStatus:  httpStatus,
		InternalErr: cause,
	}
}

// Predefined error constructors

// ValidationError creates a validation error with field-level detail
func ValidationError(code, message string) *APIError {
	return NewAPIError(ErrorTypeValidation, code, message, http.StatusBadRequest)
}

// ValidationErrorWithDetails creates a validation error with details
func ValidationErrorWithDetails(code, message, details string) *APIError {
	e := ValidationError(code, message)
	e.Details = details
	return e
}

// NotFoundError creates a not found error
func NotFoundError(resource string) *APIError {
	return NewAPIError(ErrorTypeNotFound, "RESOURCE_NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ConflictError creates a conflict error for a lost state-transition race
func ConflictError(message string) *APIError {
	return NewAPIError(ErrorTypeConflict, "RESOURCE_CONFLICT", message, http.StatusConflict)
}

// DuplicateError creates a duplicate error for a violated uniqueness invariant
func DuplicateError(message string) *APIError {
	return NewAPIError(ErrorTypeDuplicate, "DUPLICATE_RESOURCE", message, http.StatusConflict)
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError(message string) *APIError {
	return NewAPIError(ErrorTypeUnauthorized, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// PermissionError creates a permission denial. The message is deliberately
// generic so an unauthorized principal learns nothing about the resource.
func PermissionError() *APIError {
	return NewAPIError(ErrorTypeForbidden, "FORBIDDEN", "insufficient permissions", http.StatusForbidden)
}

// UpstreamError creates an error for an unreachable or failing external service
func UpstreamError(service string, cause error) *APIError {
	return NewAPIErrorWithCause(ErrorTypeUpstream, "UPSTREAM_ERROR",
		fmt.Sprintf("upstream service unavailable: %s", service),
		http.StatusBadGateway, cause)
}

// InternalError creates an internal server error
func InternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

// DatabaseError creates a database error
func DatabaseError(operation string, cause error) *APIError {
	return NewAPIErrorWithCause(ErrorTypeDatabase, "DATABASE_ERROR",
		fmt.Sprintf("database operation failed: %s", operation),
		http.StatusInternalServerError, cause)
}

// GetAPIError extracts an APIError from an error chain
func GetAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsType reports whether err is an APIError of the given type
func IsType(err error, errorType ErrorType) bool {
	apiErr := GetAPIError(err)
	return apiErr != nil && apiErr.Type == errorType
}
