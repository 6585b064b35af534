package errors

import (
	"errors"
	"fmt"
)

// Error types for the export pipeline
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeValidation    ErrorType = "VALIDATION_ERROR"
	ErrorTypeStore         ErrorType = "STORE_ERROR"
	ErrorTypeOrdering      ErrorType = "ORDERING_ERROR"
	ErrorTypeOutput        ErrorType = "OUTPUT_ERROR"
	ErrorTypeInternal      ErrorType = "INTERNAL_ERROR"
)

// Common configuration errors
var (
	ErrProjectIDNotSet    = errors.New("FIRESTORE_PROJECT_ID is not set")
	ErrMongoURINotSet     = errors.New("MONGODB_URI is not set")
	ErrCredentialsMissing = errors.New("credentials file not found")
	ErrInvalidSampleLimit = errors.New("sample document limit must not be negative")
)

// Store-specific errors
var (
	// ErrOrderingUnsupported marks an ordered sample query the store could not
	// satisfy (missing sort index, order field absent from every document).
	// The sampler recovers from this class; every other store error is fatal.
	ErrOrderingUnsupported = errors.New("ordered query unsupported by store")

	ErrInvalidPath         = errors.New("invalid firestore path")
	ErrInvalidProjectID    = errors.New("invalid project ID")
	ErrInvalidDatabaseID   = errors.New("invalid database ID")
	ErrInvalidCollectionID = errors.New("invalid collection ID")
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrDocumentNotFound    = errors.New("document not found")
)

// AppError represents a custom application error with context
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Component string                 `json:"component,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent adds the component name
func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Common error constructors

// NewConfigurationError creates a configuration error
func NewConfigurationError(message string) *AppError {
	return NewAppError(ErrorTypeConfiguration, message)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message)
}

// NewStoreError creates a store access error
func NewStoreError(message string) *AppError {
	return NewAppError(ErrorTypeStore, message)
}

// NewOrderingError creates an ordering-unsupported error carrying the
// recoverable sentinel so callers can branch with IsOrderingUnsupported.
func NewOrderingError(message string, cause error) *AppError {
	appErr := NewAppError(ErrorTypeOrdering, message)
	if cause != nil {
		appErr.Cause = fmt.Errorf("%w: %v", ErrOrderingUnsupported, cause)
	} else {
		appErr.Cause = ErrOrderingUnsupported
	}
	return appErr
}

// NewOutputError creates an output artifact error
func NewOutputError(message string) *AppError {
	return NewAppError(ErrorTypeOutput, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, message)
}

// Helper functions for common error scenarios

// WrapError wraps an error with context
func WrapError(err error, message string) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// IsOrderingUnsupported reports whether an error belongs to the recoverable
// ordering-unsupported class. Only the sampler's fallback branch consumes this.
func IsOrderingUnsupported(err error) bool {
	if appErr, ok := err.(*AppError); ok && appErr.Type == ErrorTypeOrdering {
		return true
	}
	return errors.Is(err, ErrOrderingUnsupported)
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeConfiguration
	}
	return errors.Is(err, ErrProjectIDNotSet) || errors.Is(err, ErrMongoURINotSet) ||
		errors.Is(err, ErrCredentialsMissing) || errors.Is(err, ErrInvalidSampleLimit)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeValidation
	}
	return false
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCollectionNotFound) || errors.Is(err, ErrDocumentNotFound)
}
