// Package apperr defines the typed failure taxonomy shared by all services.
// Handlers inspect the Kind to pick an HTTP status; the message is safe to show
// to clients, the wrapped cause is for logs only.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the HTTP layer.
type Kind int

const (
	// KindValidation — malformed or missing input; the caller's fault.
	KindValidation Kind = iota
	// KindNotFound — referenced entity absent or inactive.
	KindNotFound
	// KindConflict — duplicate unique key (sequence code, customer phone).
	KindConflict
	// KindInvalidState — business-rule violation (selling a variant parent
	// directly, deleting a system expense, deactivating the last owner).
	KindInvalidState
	// KindInsufficient — stock too low, payment too low, overpayment on debt.
	KindInsufficient
	// KindUnexpected — anything else, including store failures.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindInsufficient:
		return "insufficient"
	default:
		return "unexpected"
	}
}

// Error carries a kind, a client-safe message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match two apperr values by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func Insufficient(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInsufficient, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an arbitrary error as unexpected. The message shown to clients is
// generic; the cause stays attached for logging.
func Wrap(err error, message string) *Error {
	return &Error{Kind: KindUnexpected, Message: message, cause: err}
}

// KindOf extracts the kind from err, defaulting to KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// MessageOf returns the client-safe message for err. Unexpected errors get a
// generic message so internals never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindUnexpected {
		return e.Message
	}
	return "internal server error"
}
