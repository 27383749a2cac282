// Package apperr defines the coded errors the application surfaces to
// callers, and their mapping to HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

const (
	CodeValidation   = "VALIDATION"
	CodeDuplicate    = "DUPLICATE"
	CodeAuthFailed   = "AUTH_FAILED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeStore        = "STORE_ERROR"
)

type Error struct {
	Code    string
	Message string
	Origin  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Origin
}

func New(code, message string, origin error) *Error {
	return &Error{Code: code, Message: message, Origin: origin}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func Duplicate(message string) *Error {
	return &Error{Code: CodeDuplicate, Message: message}
}

func AuthFailed(message string) *Error {
	return &Error{Code: CodeAuthFailed, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Store(message string, origin error) *Error {
	return &Error{Code: CodeStore, Message: message, Origin: origin}
}

// Code returns the application error code, or "" for plain errors.
func Code(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsCode(err error, code string) bool {
	return Code(err) == code
}

// HTTPStatus maps an error to the status its code implies. Plain
// errors map to 500.
func HTTPStatus(err error) int {
	switch Code(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAuthFailed, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
