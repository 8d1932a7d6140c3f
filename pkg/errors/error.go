// Package errors provides coded errors for the scanner and trading engine.
//
// Codes are grouped by the layer that raises them:
//   - General (1-99)
//   - Validation and configuration (100-199)
//   - Market data (200-299)
//   - Exchange gateway (300-399)
//   - Strategy and backtest (400-499)
//   - Order placement and brackets (500-599)
//   - Funds (600-699)
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeSymbolNotFound, "symbol %s not listed", symbol)
//	err := errors.Wrap(errors.ErrCodeExchangeRequestFailed, "failed to fetch balance", cause)
//	if errors.HasCode(err, errors.ErrCodeLegRejected) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps cause with the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps cause with the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost coded error in err's chain.
// Typed errors of this package report their fixed code.
// Returns ErrCodeUnknown otherwise.
func GetCode(err error) ErrorCode {
	for current := err; current != nil; current = errors.Unwrap(current) {
		switch typed := current.(type) {
		case *Error:
			return typed.Code
		case *InsufficientFundsError:
			return ErrCodeInsufficientFunds
		case *InsufficientDataError:
			return ErrCodeInsufficientData
		case *UnprotectedPositionError:
			return ErrCodeUnprotectedPosition
		}
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError is returned when a series is too short for a calculation.
type InsufficientDataError struct {
	Required int    // Minimum bars required
	Actual   int    // Bars available
	Symbol   string // Optional symbol context
	Message  string
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError checks the chain for an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}

// InsufficientFundsError reports that the available balance does not cover the margin
// required for a trade. It is an expected, recoverable condition.
type InsufficientFundsError struct {
	Symbol    string
	Required  float64
	Available float64
}

// Error implements the error interface.
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds to place order for %s: required %.2f, available %.2f",
		e.Symbol, e.Required, e.Available)
}

// IsInsufficientFundsError checks the chain for an InsufficientFundsError.
func IsInsufficientFundsError(err error) bool {
	var fundsErr *InsufficientFundsError

	return errors.As(err, &fundsErr)
}

// UnprotectedPositionError is returned when an entry order was accepted but one of its
// protective legs was rejected. The position is live without full protection.
type UnprotectedPositionError struct {
	Symbol       string
	AttemptID    string
	EntryOrderID string
	FailedLeg    string
	Cause        error
}

// Error implements the error interface.
func (e *UnprotectedPositionError) Error() string {
	return fmt.Sprintf("unprotected position on %s (attempt %s, entry order %s): %s leg rejected: %v",
		e.Symbol, e.AttemptID, e.EntryOrderID, e.FailedLeg, e.Cause)
}

// Unwrap returns the rejection that left the position unprotected.
func (e *UnprotectedPositionError) Unwrap() error {
	return e.Cause
}

// IsUnprotectedPositionError checks the chain for an UnprotectedPositionError.
func IsUnprotectedPositionError(err error) bool {
	var unprotected *UnprotectedPositionError

	return errors.As(err, &unprotected)
}
