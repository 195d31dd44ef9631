package api

import "net/http"

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation_error"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeForbidden    ErrorCode = "forbidden"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeServer       ErrorCode = "server_error"
	ErrorCodeNetwork      ErrorCode = "network_error"
	ErrorCodeDecode       ErrorCode = "decode_error"
)

// Error carries the server-provided detail (or a generic fallback) plus a
// code the views can branch on, e.g. unauthorized -> redirect to login.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func codeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return ErrorCodeUnauthorized
	case status == http.StatusForbidden:
		return ErrorCodeForbidden
	case status == http.StatusNotFound:
		return ErrorCodeNotFound
	case status >= 400 && status < 500:
		return ErrorCodeValidation
	default:
		return ErrorCodeServer
	}
}
