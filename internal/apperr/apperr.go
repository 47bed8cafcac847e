// Package apperr classifies service-layer failures so controllers can map
// them to HTTP statuses without string matching.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDenied          // role or ownership mismatch
	KindUnauthenticated // bad credentials or token
	KindConflict
	KindValidation
	KindUpstream // external collaborator failure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Kind: kind, Message: err.Error(), Err: errors.Unwrap(err)}
}

func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func Denied(format string, args ...interface{}) *Error {
	return newf(KindDenied, format, args...)
}

func Unauthenticated(format string, args ...interface{}) *Error {
	return newf(KindUnauthenticated, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

func Upstream(format string, args ...interface{}) *Error {
	return newf(KindUpstream, format, args...)
}

func Internal(format string, args ...interface{}) *Error {
	return newf(KindInternal, format, args...)
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindDenied:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
