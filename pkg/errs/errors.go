// Package errs provides the structured error type used across duckbridge.
//
// Every failure the connector surfaces carries a Kind tag and a human-readable
// message, mirroring the all-or-nothing contract of the configuration builders:
// errors are raised at the point of detection, never retried, and never
// accompanied by a partial result. Callers branch on the Is* predicates instead
// of matching message text.
//
// Usage:
//
//	// In a builder, fail the whole construction:
//	return errs.Newf(errs.KindConfiguration, "a MotherDuck token is required for %q", db)
//
//	// In a caller, classify:
//	if errs.IsInvalidOption(err) {
//	    // unknown option key; show the valid set to the user
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises a connector error. The CLI and library callers rely on
// these tags rather than on error codes or message contents.
type Kind int

const (
	KindUnknown          Kind = iota
	KindConfiguration         // unusable connection parameters (e.g. missing MotherDuck token)
	KindInvalidOption         // option key not present in the schema
	KindInvalidValue          // option value fails its type or predicate check
	KindConnectionFailed      // the bridge could not reach the database
	KindQueryFailed           // the engine rejected a statement
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInvalidOption:
		return "invalid_option"
	case KindInvalidValue:
		return "invalid_value"
	case KindConnectionFailed:
		return "connection_failed"
	case KindQueryFailed:
		return "query_failed"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by duckbridge packages.
type Error struct {
	Kind    Kind
	Message string
	Cause   error // underlying driver error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is / errors.As traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error with the given kind and message and no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message and no cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsConfiguration reports whether err marks unusable connection parameters.
func IsConfiguration(err error) bool {
	return kindOf(err) == KindConfiguration
}

// IsInvalidOption reports whether err was caused by an unknown option key.
func IsInvalidOption(err error) bool {
	return kindOf(err) == KindInvalidOption
}

// IsInvalidValue reports whether err was caused by an option value failing
// its type or predicate check.
func IsInvalidValue(err error) bool {
	return kindOf(err) == KindInvalidValue
}

// IsConnectionFailed reports whether err is a connectivity failure.
func IsConnectionFailed(err error) bool {
	return kindOf(err) == KindConnectionFailed
}

// IsQueryFailed reports whether err is a statement execution failure.
func IsQueryFailed(err error) bool {
	return kindOf(err) == KindQueryFailed
}

// kindOf extracts the Kind from any error in the chain.
func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
