package domain

import (
	"errors"
	"net/http"
)

// Code classifies an AppError into one of the outcomes the HTTP layer
// knows how to translate.
type Code int

const (
	CodeNotFound Code = iota + 1
	CodeAlreadyExists
	CodeValidation
	CodeInternal
	CodeUnauthorized
)

var httpStatusByCode = map[Code]int{
	CodeNotFound:      http.StatusNotFound,
	CodeAlreadyExists: http.StatusConflict,
	CodeValidation:    http.StatusBadRequest,
	CodeInternal:      http.StatusInternalServerError,
	CodeUnauthorized:  http.StatusUnauthorized,
}

// AppError is an error the service layer intends a client to see: a
// classification code, a message safe to show, and optionally the
// underlying cause for logs.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping err, which may be nil.
func NewAppError(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Generic sentinels for when no more specific message is worth writing.
//
// Match by category with IsNotFound and friends rather than errors.Is:
// the helpers compare codes, so they also recognize AppErrors built with
// NewAppError, while errors.Is on a sentinel only matches that exact
// pointer.
var (
	ErrNotFound      = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists = &AppError{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation    = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrInternal      = &AppError{Code: CodeInternal, Message: "internal error"}
	ErrUnauthorized  = &AppError{Code: CodeUnauthorized, Message: "unauthorized"}
)

// IsNotFound reports whether err carries CodeNotFound anywhere in its chain.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsAlreadyExists reports whether err carries CodeAlreadyExists.
func IsAlreadyExists(err error) bool { return hasCode(err, CodeAlreadyExists) }

// IsValidation reports whether err carries CodeValidation.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsInternal reports whether err carries CodeInternal.
func IsInternal(err error) bool { return hasCode(err, CodeInternal) }

// IsUnauthorized reports whether err carries CodeUnauthorized.
func IsUnauthorized(err error) bool { return hasCode(err, CodeUnauthorized) }

func hasCode(err error, code Code) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// HTTPStatusCode translates err into the status an API handler should
// answer with. Anything that is not an AppError, or carries an unknown
// code, is a 500.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if status, ok := httpStatusByCode[appErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}
