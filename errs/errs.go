// Package errs holds the classified error taxonomy shared by every
// component of the client: the normalizer, signer, transport, and
// facade all return errors wrapped in *Error so callers can switch on
// Kind instead of string-matching messages.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way the wire protocol and the
// normalizer/signer pipeline can fail. It intentionally mirrors the
// kind names used in the project's design notes, not Go type names.
type Kind string

const (
	UnknownSymbol Kind = "UNKNOWN_SYMBOL"
	NoPosition    Kind = "NO_POSITION"
	BadNumber     Kind = "BAD_NUMBER"
	BadAddress    Kind = "BAD_ADDRESS"
	BadPosition   Kind = "BAD_POSITION"
	EncodeError   Kind = "ENCODE_ERROR"
	BadBuilderFee Kind = "BAD_BUILDER_FEE"
	SignError     Kind = "SIGN_ERROR"
	HTTP4xx       Kind = "HTTP_4XX"
	HTTP5xx       Kind = "HTTP_5XX"
	IO            Kind = "IO"
)

// Error is a classified error: a Kind plus the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error with no underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds a classified error around an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is, or wraps, a classified *Error of the given
// kind. It walks the error chain via errors.As so a *Error wrapped by
// fmt.Errorf("...: %w", err) still classifies correctly.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
