// Package serrors implements semantic error kinds for urlcheck. A kind tells
// the caller how to treat a failure (abort the run, count it, reject the line)
// without parsing error strings.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided name.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrInput indicates the input file is missing, unreadable, or not text. Fatal.
	ErrInput = NewKind("INPUT")
	// ErrOutput indicates the output sink cannot be opened or written. Fatal.
	ErrOutput = NewKind("OUTPUT")
	// ErrUsage indicates an invalid combination of command line options.
	ErrUsage = NewKind("USAGE")
	// ErrInvalidURL indicates a target that does not look like a URL.
	ErrInvalidURL = NewKind("INVALID_URL")
	// ErrUnexpectedStatus indicates the server answered with a status that is
	// neither OK nor a handled redirect.
	ErrUnexpectedStatus = NewKind("UNEXPECTED_STATUS")
	// ErrRequestFailed indicates no response was received (DNS, connection,
	// TLS, timeout or cancellation).
	ErrRequestFailed = NewKind("REQUEST_FAILED")
)

// Error carries a kind, an optional wrapped cause and an optional message.
//
// errors.Is and errors.As match either the kind or the wrapped cause.
// Error() renders "<msg>: <cause>", "<msg>", "<cause>" or the kind name,
// whichever parts are present.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs an error of kind k with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs an error of kind k wrapping err. An empty msgFmt keeps the
// cause's text as the whole message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	msg := ""
	if msgFmt != "" {
		msg = fmt.Sprintf(msgFmt, args...)
	}

	return &Error{kind: k, err: err, msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is matches target against the kind or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As matches target against the kind or the wrapped cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// KindOf extracts the kind carried anywhere in err's chain, or nil.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return nil
}
