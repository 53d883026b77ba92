// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Common engine errors
var (
	ErrDriverResolution = errors.New("no usable browser driver found")
	ErrPageLoadTimeout  = errors.New("timed out waiting for page content")
	ErrFieldMissing     = errors.New("record field missing")
	ErrNavigation       = errors.New("navigation failed")
)

// ErrorCode tags an engine failure with one case of the error taxonomy
type ErrorCode string

const (
	ErrCodeDriverResolution ErrorCode = "DRIVER_RESOLUTION"
	ErrCodePageLoadTimeout  ErrorCode = "PAGE_LOAD_TIMEOUT"
	ErrCodeFieldExtraction  ErrorCode = "FIELD_EXTRACTION"
	ErrCodeNavigation       ErrorCode = "NAVIGATION"
)

var sentinels = map[ErrorCode]error{
	ErrCodeDriverResolution: ErrDriverResolution,
	ErrCodePageLoadTimeout:  ErrPageLoadTimeout,
	ErrCodeFieldExtraction:  ErrFieldMissing,
	ErrCodeNavigation:       ErrNavigation,
}

// Error wraps errors with a taxonomy code and additional context
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches another *Error by code, the sentinel for this code, or the underlying error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	if s, ok := sentinels[e.Code]; ok && s == target {
		return true
	}
	return errors.Is(e.Underlying, target)
}

// NewError creates a new Error
func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.Details[key] = value
	return e
}

// DriverResolutionError reports that no browser could be started
func DriverResolutionError(message string, err error) *Error {
	return NewError(ErrCodeDriverResolution, message, err)
}

// PageLoadTimeoutError reports that the bounded wait on url expired
func PageLoadTimeoutError(url string, err error) *Error {
	return NewError(ErrCodePageLoadTimeout, "record containers did not appear", err).
		WithDetail("url", url)
}

// NavigationError reports a load failure that was not a timeout
func NavigationError(url string, err error) *Error {
	return NewError(ErrCodeNavigation, "could not load page", err).
		WithDetail("url", url)
}

// CodeOf returns the taxonomy code carried by err, or "" when err is untagged
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
