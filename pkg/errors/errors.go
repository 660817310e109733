// Package errors defines the coded errors shared by the libscope packages,
// the HTTP API and the CLI.
//
// A [Code] decides the HTTP status a failure is reported with; the message
// is what clients see in the "message" field of the error envelope:
//
//	err := errors.New(errors.ErrCodePackageNotFound, "Library '%s' not found or could not be imported.", name)
//	errors.HTTPStatus(err)  // 404
//	errors.UserMessage(err) // "Library 'x' not found or could not be imported."
//
// Errors that carry no code are internal failures (500).
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable failure category.
type Code string

const (
	// Bad requests.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Lookups that resolved nothing.
	ErrCodePackageNotFound Code = "PACKAGE_NOT_FOUND"
	ErrCodeElementNotFound Code = "ELEMENT_NOT_FOUND"

	// Interpreter, renderer or registry failures.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

var statusByCode = map[Code]int{
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidPackage:  http.StatusBadRequest,
	ErrCodeInvalidFormat:   http.StatusBadRequest,
	ErrCodePackageNotFound: http.StatusNotFound,
	ErrCodeElementNotFound: http.StatusNotFound,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with a cause attached.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := asError(err); e != nil {
		return e.Code
	}
	return ""
}

// Is reports whether err's chain carries code.
func Is(err error, code Code) bool {
	e := asError(err)
	return e != nil && e.Code == code
}

// UserMessage returns the client-facing text of err: the message of a coded
// error without its code prefix, or err.Error() otherwise.
func UserMessage(err error) string {
	if e := asError(err); e != nil {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err is a package or element lookup miss.
func IsNotFound(err error) bool {
	return HTTPStatus(err) == http.StatusNotFound
}

// HTTPStatus maps err onto the status the API answers with.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
