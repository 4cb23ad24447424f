// Package errors provides the typed errors returned by the unit algebra.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeUnitMismatch indicates Add/Sub/comparison between unequal units
	TypeUnitMismatch Type = "UNIT_MISMATCH"

	// TypeIncompatibleCompose indicates conflicting unit identities in one dimension slot
	TypeIncompatibleCompose Type = "INCOMPATIBLE_COMPOSE"

	// TypeExponentOverflow indicates exponent arithmetic left the representable range
	TypeExponentOverflow Type = "EXPONENT_OVERFLOW"

	// TypeMissingConversion indicates no conversion exists between two units
	TypeMissingConversion Type = "MISSING_CONVERSION"

	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing indicates a parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeNotFound indicates a catalog lookup miss
	TypeNotFound Type = "NOT_FOUND"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType reports whether err, or any error it wraps, is of type t.
func IsType(err error, t Type) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Type == t {
			return true
		}
		err = e.Cause
	}
	return false
}

// UnitMismatch creates a unit mismatch error
func UnitMismatch(op, left, right string) *Error {
	return Newf(TypeUnitMismatch, "cannot %s %s and %s", op, left, right).
		WithContext("left", left).
		WithContext("right", right)
}

// IncompatibleCompose creates a compose error for one dimension slot
func IncompatibleCompose(dimension, left, right string) *Error {
	return Newf(TypeIncompatibleCompose, "%s slot holds both %s and %s; convert first", dimension, left, right).
		WithContext("dimension", dimension)
}

// ExponentOverflow creates an exponent overflow error
func ExponentOverflow(format string, args ...interface{}) *Error {
	return Newf(TypeExponentOverflow, format, args...)
}

// MissingConversion creates a missing conversion error
func MissingConversion(from, to string) *Error {
	return Newf(TypeMissingConversion, "no conversion from %s to %s", from, to)
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// NotFound creates a not found error
func NotFound(kind, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", kind, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
