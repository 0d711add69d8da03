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
	ErrPermission    ErrorCode = "PERMISSION"
	ErrCanceled      ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Batch preconditions. Any of these aborts the batch before a rename runs.
	ErrNoSources       ErrorCode = "NO_SOURCES"
	ErrDuplicateSource ErrorCode = "DUPLICATE_SOURCE"
	ErrCountMismatch   ErrorCode = "COUNT_MISMATCH"

	// Editor handoff errors
	ErrNoEditor      ErrorCode = "NO_EDITOR"
	ErrEditorFailed  ErrorCode = "EDITOR_FAILED"
	ErrHandoffCreate ErrorCode = "HANDOFF_CREATE"
	ErrHandoffRead   ErrorCode = "HANDOFF_READ"

	// Operator prompt errors
	ErrPromptRead  ErrorCode = "PROMPT_READ"
	ErrPromptWrite ErrorCode = "PROMPT_WRITE"

	// Per-pair errors, collected into the batch outcome
	ErrCollision ErrorCode = "COLLISION"
	ErrRename    ErrorCode = "RENAME"
	ErrFileInfo  ErrorCode = "FILE_INFO"
)

// BulkmvError represents a structured error with code and details
type BulkmvError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BulkmvError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Reason is the text shown to the operator: the wrapped error verbatim when
// there is one, the message otherwise.
func (e *BulkmvError) Reason() string {
	if e.Wrapped != nil {
		return e.Wrapped.Error()
	}
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *BulkmvError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BulkmvError) Is(target error) bool {
	var targetErr *BulkmvError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BulkmvError with the given code and message
func New(code ErrorCode, message string) *BulkmvError {
	return &BulkmvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BulkmvError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BulkmvError {
	return &BulkmvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BulkmvError
func Wrap(err error, code ErrorCode, message string) *BulkmvError {
	if err == nil {
		return nil
	}
	return &BulkmvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BulkmvError {
	if err == nil {
		return nil
	}
	return &BulkmvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BulkmvError) WithDetail(key string, value interface{}) *BulkmvError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *BulkmvError) WithDetails(details map[string]interface{}) *BulkmvError {
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
	var bulkErr *BulkmvError
	if errors.As(err, &bulkErr) {
		return bulkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BulkmvError
func GetErrorCode(err error) ErrorCode {
	var bulkErr *BulkmvError
	if errors.As(err, &bulkErr) {
		return bulkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BulkmvError
func GetErrorDetails(err error) map[string]interface{} {
	var bulkErr *BulkmvError
	if errors.As(err, &bulkErr) {
		return bulkErr.Details
	}
	return nil
}
