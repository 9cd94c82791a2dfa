package devtools

import (
	"errors"
	"fmt"
)

// Kind classifies failures reported back to the caller.
type Kind string

const (
	KindConnection      Kind = "ConnectionError"
	KindNoPages         Kind = "NoPagesError"
	KindInvalidIndex    Kind = "InvalidIndexError"
	KindEvaluation      Kind = "EvaluationError"
	KindElementNotFound Kind = "ElementNotFoundError"
	KindInvalidArgument Kind = "InvalidArgumentError"
	KindUnknownTool     Kind = "UnknownToolError"
	KindInternal        Kind = "InternalError"
)

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// NewError creates an error of the given kind.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind carrying cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
