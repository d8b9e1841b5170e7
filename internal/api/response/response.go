// Package response defines the uniform envelope returned by every endpoint.
package response

import "strings"

// Stable error codes carried in the envelope. AUTH_INVALID deliberately
// covers both bad credentials and duplicate registration so responses stay
// non-specific.
const (
	CodeAuthInvalid     = "AUTH_INVALID"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodeBadRequest      = "BAD_REQUEST"
	CodeInternal        = "INTERNAL_ERROR"
)

// Envelope is the canonical response shape:
// {isSuccess, data, message, errorCode, errors}. ErrorCode is null on
// success and one of the stable codes on failure.
type Envelope struct {
	IsSuccess bool     `json:"isSuccess"`
	Data      any      `json:"data"`
	Message   string   `json:"message"`
	ErrorCode *string  `json:"errorCode"`
	Errors    []string `json:"errors"`
}

// Code returns the error code, or "" when the envelope carries none.
func (e Envelope) Code() string {
	if e.ErrorCode == nil {
		return ""
	}
	return *e.ErrorCode
}

// Success wraps data in a success envelope.
func Success(data any, message string) Envelope {
	return Envelope{
		IsSuccess: true,
		Data:      data,
		Message:   message,
		Errors:    []string{},
	}
}

// Failure builds a failure envelope with a stable error code and optional
// itemized errors.
func Failure(message, code string, errs []string) Envelope {
	if errs == nil {
		errs = []string{}
	}
	return Envelope{
		IsSuccess: false,
		Message:   message,
		ErrorCode: &code,
		Errors:    errs,
	}
}

// ValidationError carries itemized field errors from request validation to
// the central error handler.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}
