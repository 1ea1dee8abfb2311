// Package service is the domain policy layer.  It owns the marketplace
// rules: who may create, change and delete a listing, the one-way
// purchase transition, and the one-review-per-product-per-user rule.
// Services depend only on small store interfaces so tests can run them
// against in-memory doubles.
package service

import "errors"

// ErrorKind classifies a domain failure.  Handlers translate kinds into
// HTTP status codes in exactly one place.
type ErrorKind int

const (
	KindValidation  ErrorKind = iota + 1 // missing or malformed input
	KindAuth                             // bad credentials
	KindForbidden                        // authenticated but not allowed
	KindNotFound                         // no such resource
	KindConflict                         // duplicate, already sold, already reviewed
	KindUnavailable                      // external dependency failure
)

// Error is a typed domain failure carrying a caller-safe message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func errValidation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func errAuth(msg string) error       { return &Error{Kind: KindAuth, Message: msg} }
func errForbidden(msg string) error  { return &Error{Kind: KindForbidden, Message: msg} }
func errNotFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func errConflict(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }

// KindOf extracts the ErrorKind from err, or 0 when err is not a domain
// error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
