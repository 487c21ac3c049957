// Package errors defines the coded errors returned across redist. Callers
// branch on the code with IsErrorCode rather than on message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable identifier for a class of failure
type ErrorCode string

const (
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Registry arguments
	ErrInvalidAction   ErrorCode = "INVALID_ACTION"
	ErrInvalidCallback ErrorCode = "INVALID_CALLBACK"
	ErrInvalidHost     ErrorCode = "INVALID_HOST"

	// Configuration
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Scripts
	ErrScriptParse   ErrorCode = "SCRIPT_PARSE"
	ErrScriptInvalid ErrorCode = "SCRIPT_INVALID"
)

// RedistError carries a code, a message, optional key/value details and the
// error it wraps, if any.
type RedistError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Wrapped error
}

func (e *RedistError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
}

func (e *RedistError) Unwrap() error {
	return e.Wrapped
}

// Is matches any RedistError with the same code.
func (e *RedistError) Is(target error) bool {
	var other *RedistError
	return errors.As(target, &other) && other.Code == e.Code
}

// WithDetail records a detail on e and returns it for chaining.
func (e *RedistError) WithDetail(key string, value any) *RedistError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New returns an error with code and message.
func New(code ErrorCode, message string) *RedistError {
	return &RedistError{Code: code, Message: message}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *RedistError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap returns an error with code and message wrapping err, or nil when err
// is nil.
func Wrap(err error, code ErrorCode, message string) *RedistError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *RedistError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// IsErrorCode reports whether err, or any error it wraps, is a RedistError
// with code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *RedistError
	return errors.As(err, &e) && e.Code == code
}
