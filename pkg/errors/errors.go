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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Template errors
	ErrInvalidTemplate   ErrorCode = "INVALID_TEMPLATE"
	ErrDuplicateTemplate ErrorCode = "DUPLICATE_TEMPLATE"
	ErrTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrArgumentRequired  ErrorCode = "ARGUMENT_REQUIRED"
	ErrExpression        ErrorCode = "EXPRESSION"

	// Action errors
	ErrActionSourceMissing ErrorCode = "ACTION_SOURCE_MISSING"
	ErrActionExecute       ErrorCode = "ACTION_EXECUTE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// TemplatizerError represents a structured error with code and details
type TemplatizerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TemplatizerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TemplatizerError) Unwrap() error {
	return e.Wrapped
}

// Is matches any TemplatizerError carrying the same code
func (e *TemplatizerError) Is(target error) bool {
	var targetErr *TemplatizerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TemplatizerError with the given code and message
func New(code ErrorCode, message string) *TemplatizerError {
	return &TemplatizerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TemplatizerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TemplatizerError {
	return &TemplatizerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TemplatizerError
func Wrap(err error, code ErrorCode, message string) *TemplatizerError {
	if err == nil {
		return nil
	}
	return &TemplatizerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TemplatizerError {
	if err == nil {
		return nil
	}
	return &TemplatizerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TemplatizerError) WithDetail(key string, value interface{}) *TemplatizerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TemplatizerError) WithDetails(details map[string]interface{}) *TemplatizerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tplErr *TemplatizerError
	if errors.As(err, &tplErr) {
		return tplErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any error in the chain carries the code.
// IsErrorCode only looks at the outermost TemplatizerError.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var tplErr *TemplatizerError
		if !errors.As(err, &tplErr) {
			return false
		}
		if tplErr.Code == code {
			return true
		}
		err = tplErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TemplatizerError
func GetErrorCode(err error) ErrorCode {
	var tplErr *TemplatizerError
	if errors.As(err, &tplErr) {
		return tplErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TemplatizerError
func GetErrorDetails(err error) map[string]interface{} {
	var tplErr *TemplatizerError
	if errors.As(err, &tplErr) {
		return tplErr.Details
	}
	return nil
}
