package service

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorConfiguration ErrorCode = "configuration"
	ErrorValidation    ErrorCode = "validation"
	ErrorNotFound      ErrorCode = "not_found"
	ErrorUnauthorized  ErrorCode = "unauthorized"
	ErrorStore         ErrorCode = "store"
)

// ServiceError carries a code the transport layer maps to a status.
// Message is safe to show to clients; Err is for logs only.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func NewConfigurationError(msg string) error {
	return &ServiceError{Code: ErrorConfiguration, Message: msg}
}

func NewValidationError(msg string) error { return &ServiceError{Code: ErrorValidation, Message: msg} }
func NewNotFoundError(msg string) error   { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

// NewStoreError wraps a failed store call made during op
func NewStoreError(op string, err error) error {
	return &ServiceError{Code: ErrorStore, Message: fmt.Sprintf("%s failed", op), Err: err}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CodeOf returns the code of err, or ErrorStore for untyped errors
func CodeOf(err error) ErrorCode {
	if se, ok := AsServiceError(err); ok {
		return se.Code
	}
	return ErrorStore
}
