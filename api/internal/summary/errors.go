package summary

import (
	"errors"
	"fmt"
)

// Kind classifies why a summarize call failed.
type Kind string

const (
	KindUnknown       Kind = "unknown"
	KindValidation    Kind = "validation"    // caller input missing or empty
	KindConfiguration Kind = "configuration" // API key absent or malformed
	KindTransport     Kind = "transport"     // network or HTTP failure talking to the provider
	KindBlocked       Kind = "blocked"       // provider withheld output for safety reasons
	KindParse         Kind = "parse"         // provider answered with an unrecognized shape
)

func (k Kind) String() string { return string(k) }

// Error is the failure returned by every stage of the pipeline.
// Msg is the human readable text shown to callers.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: KindBlocked}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Kind == e.Kind
}

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind to cause, prefixing the message.
func Wrap(kind Kind, cause error, prefix string) *Error {
	msg := prefix
	if cause != nil {
		msg = prefix + cause.Error()
	}
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

var (
	ErrEmptyText       = &Error{Kind: KindValidation, Msg: "Extracted text cannot be empty"}
	ErrMissingMetadata = &Error{Kind: KindValidation, Msg: "Language and subject are required"}
	ErrInvalidAPIKey   = &Error{Kind: KindConfiguration, Msg: "Invalid or missing Gemini API key. Please configure a valid API key."}
)
