package core

import (
	"errors"
	"fmt"
)

// Kind is the outcome class of a failed use case, as seen by the boundary.
type Kind string

const (
	KindInvalidParameter Kind = "invalidParameter"
	KindNotFound         Kind = "notFound"
	KindForbidden        Kind = "forbidden"
	KindUnprocessable    Kind = "unprocessable"
	KindConflict         Kind = "conflict"
	KindUnexpected       Kind = "unexpected"
)

// Code returns the failure code that best represents the kind.
func (k Kind) Code() ErrorCode {
	switch k {
	case KindInvalidParameter:
		return CodeInvalidInput
	case KindNotFound:
		return CodeNotFound
	case KindForbidden:
		return CodeForbidden
	case KindUnprocessable:
		return CodeUnprocessable
	case KindConflict:
		return CodeConflict
	default:
		return CodeUnexpected
	}
}

// Error is the terminal error of a use case. It carries the kind, a summary
// message, the field-level failures that caused it and an optional cause.
type Error struct {
	Kind     Kind
	Message  string
	Failures Failures
	cause    error
}

func (e *Error) Error() string {
	switch {
	case len(e.Failures) > 0:
		return fmt.Sprintf("%s: %s", e.Kind, e.Failures.Error())
	case e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// InvalidParameter wraps the guard failures of a rejected command.
func InvalidParameter(failures Failures) *Error {
	return &Error{Kind: KindInvalidParameter, Message: "invalid parameter", Failures: failures}
}

// NotFound reports a missing resource. It is a distinct outcome, never a guard failure.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden wraps authorization failures.
func Forbidden(failures Failures) *Error {
	return &Error{Kind: KindForbidden, Message: "forbidden", Failures: failures}
}

// Unprocessable wraps business-rule or status-transition failures.
func Unprocessable(failures Failures) *Error {
	return &Error{Kind: KindUnprocessable, Message: "unprocessable entity", Failures: failures}
}

// Conflict wraps duplicate or concurrent-modification failures.
func Conflict(failures Failures) *Error {
	return &Error{Kind: KindConflict, Message: "conflict", Failures: failures}
}

// Unexpected wraps an internal defect or infrastructure error.
func Unexpected(message string, cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: message, cause: cause}
}

// KindOf returns the kind of a use-case error, or KindUnexpected for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func IsInvalidParameter(err error) bool { return err != nil && KindOf(err) == KindInvalidParameter }

func IsNotFound(err error) bool { return err != nil && KindOf(err) == KindNotFound }

func IsForbidden(err error) bool { return err != nil && KindOf(err) == KindForbidden }

func IsUnprocessable(err error) bool { return err != nil && KindOf(err) == KindUnprocessable }

func IsUnexpected(err error) bool { return err != nil && KindOf(err) == KindUnexpected }
