// Package apperr defines the tagged error kinds the analysis pipeline
// produces. The HTTP boundary maps kinds to status codes without ever
// inspecting message text.
package apperr

import "errors"

// Kind classifies a failure for boundary mapping.
type Kind int

const (
	// KindUnknown is the zero value; untagged errors report it.
	KindUnknown Kind = iota
	// KindInvalidInput covers missing or malformed request fields.
	KindInvalidInput
	// KindUpstreamFetch covers metadata endpoint failures.
	KindUpstreamFetch
	// KindModelInvocation covers failed generation calls.
	KindModelInvocation
	// KindParse covers exhausted JSON salvage.
	KindParse
	// KindSchema covers parsed objects missing required structure.
	KindSchema
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstreamFetch:
		return "upstream_fetch"
	case KindModelInvocation:
		return "model_invocation"
	case KindParse:
		return "parse"
	case KindSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// Error is a kind-tagged error with a human-readable message and an
// optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a kind-tagged error with the given message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap tags an underlying error with a kind and message.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the nearest *Error in err's chain, or
// KindUnknown when the chain carries no tagged error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the tagged message of the nearest *Error in err's chain.
// Untagged errors yield an empty string so the boundary can substitute a
// generic message instead of leaking internals.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}
