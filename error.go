package valtree

import (
	"slices"
	"strings"
)

// Error describes one failed check at one position: a short machine-readable
// code, an optional human-readable message and named parameters.
//
// Error is a value. WithMessage and WithParam return modified copies and never
// touch the receiver, so an Error can be shared freely once built.
type Error struct {
	code       string
	message    string
	hasMessage bool
	params     Params
}

// NewError returns an Error with the given code, no message and no params.
//
//	valtree.NewError("range").WithMessage("Number not in range").WithParam("max", 100)
func NewError(code string) Error {
	return Error{code: code}
}

// WithMessage returns a copy of e carrying msg. Calling it again replaces the message.
func (e Error) WithMessage(msg string) Error {
	e.message = msg
	e.hasMessage = true
	return e
}

// WithParam returns a copy of e with key set to value. An existing key keeps
// its position and takes the new value.
func (e Error) WithParam(key string, value any) Error {
	e.params = e.params.with(key, value)
	return e
}

// WithParams is WithParam for every entry of ps, in order.
func (e Error) WithParams(ps Params) Error {
	for _, p := range ps {
		e.params = e.params.with(p.Key, p.Value)
	}
	return e
}

// Code returns the error code, e.g. "range" or "alpha_only".
func (e Error) Code() string { return e.code }

// Message returns the message, or "" when none was set.
func (e Error) Message() string { return e.message }

// HasMessage reports whether a message was set, including an empty one.
func (e Error) HasMessage() bool { return e.hasMessage }

// Params returns the params in insertion order. The returned slice is a copy.
func (e Error) Params() Params { return slices.Clone(e.params) }

// String renders the error body: the code, then ": message" when present,
// then ": k=v, k=v" with params sorted by key.
func (e Error) String() string {
	return e.body(e.message, e.hasMessage, true)
}

// Error implements the error interface with the same text as String, so an
// Error can be returned from error-based APIs and recovered with errors.As.
func (e Error) Error() string {
	return e.String()
}

func (e Error) body(message string, hasMessage, withParams bool) string {
	var b strings.Builder
	b.WriteString(e.code)
	if hasMessage {
		b.WriteString(": ")
		b.WriteString(message)
	}
	if withParams && len(e.params) > 0 {
		for i, p := range e.params.sorted() {
			if i == 0 {
				b.WriteString(": ")
			} else {
				b.WriteString(", ")
			}
			b.WriteString(p.Key)
			b.WriteByte('=')
			b.WriteString(FormatParam(p.Value))
		}
	}
	return b.String()
}

func (e Error) equal(o Error) bool {
	return e.code == o.code &&
		e.message == o.message &&
		e.hasMessage == o.hasMessage &&
		e.params.equal(o.params)
}
