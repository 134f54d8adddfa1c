// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ring

// Kind classifies an enrollment or lookup failure. Every error that leaves
// this package carries exactly one Kind; nothing lower-level escapes
// unclassified.
type Kind int

const (
	// KindNotFound - the referenced vote or key does not exist.
	KindNotFound Kind = iota
	// KindUnauthorized - credential verification failed.
	KindUnauthorized
	// KindForbidden - the vote is inactive or the identity is not eligible.
	KindForbidden
	// KindConflict - the identity or public key is already enrolled.
	// Retrying with the same inputs cannot succeed.
	KindConflict
	// KindTransient - a collaborator timed out or was unreachable.
	// The caller may retry with backoff.
	KindTransient
)

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

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

func transient(msg string, err error) *Error {
	return &Error{Kind: KindTransient, Msg: msg, Err: err}
}
