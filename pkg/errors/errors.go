package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Binding errors
	ErrInvalidName     ErrorCode = "INVALID_NAME"
	ErrConstantBinding ErrorCode = "CONSTANT_BINDING"

	// Guard errors
	ErrOperationFailed ErrorCode = "OPERATION_FAILED"
	ErrIOFailure       ErrorCode = "IO_FAILURE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Serialization errors
	ErrSerialize   ErrorCode = "SERIALIZE"
	ErrDeserialize ErrorCode = "DESERIALIZE"
)

// SafeholdError represents a structured error with code and details
type SafeholdError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SafeholdError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SafeholdError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SafeholdError) Is(target error) bool {
	var targetErr *SafeholdError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SafeholdError with the given code and message
func New(code ErrorCode, message string) *SafeholdError {
	return &SafeholdError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SafeholdError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SafeholdError {
	return &SafeholdError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SafeholdError
func Wrap(err error, code ErrorCode, message string) *SafeholdError {
	if err == nil {
		return nil
	}
	return &SafeholdError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SafeholdError {
	if err == nil {
		return nil
	}
	return &SafeholdError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SafeholdError) WithDetail(key string, value interface{}) *SafeholdError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var shErr *SafeholdError
	if errors.As(err, &shErr) {
		return shErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SafeholdError
func GetErrorCode(err error) ErrorCode {
	var shErr *SafeholdError
	if errors.As(err, &shErr) {
		return shErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SafeholdError
func GetErrorDetails(err error) map[string]interface{} {
	var shErr *SafeholdError
	if errors.As(err, &shErr) {
		return shErr.Details
	}
	return nil
}
