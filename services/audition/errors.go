package audition

import (
	"errors"
	"fmt"
)

// Kind classifies failures so callers can map them to transport codes.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindForbidden       Kind = "FORBIDDEN"
	KindInternal        Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func NotFound(format string, args ...any) error {
	return newError(KindNotFound, nil, format, args...)
}

func Conflict(format string, args ...any) error {
	return newError(KindConflict, nil, format, args...)
}

func InvalidArgument(format string, args ...any) error {
	return newError(KindInvalidArgument, nil, format, args...)
}

func Unauthorized(format string, args ...any) error {
	return newError(KindUnauthorized, nil, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newError(KindForbidden, nil, format, args...)
}

// Internal hides cause from the caller's message; it is kept for logging.
func Internal(cause error, format string, args ...any) error {
	return newError(KindInternal, cause, format, args...)
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message of err.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}
