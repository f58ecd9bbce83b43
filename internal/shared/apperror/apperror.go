package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure taxonomy. Services return these (wrapped in
// an *AppError) and handlers map them to HTTP responses.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("authentication required")
)

// AppError is the structured error surfaced to callers. Status follows the
// platform convention: "fail" for 4xx, "error" for 5xx.
type AppError struct {
	StatusCode int
	Status     string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(statusCode int, message string, cause error) *AppError {
	status := "error"
	if statusCode >= 400 && statusCode < 500 {
		status = "fail"
	}
	return &AppError{
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
		Err:        cause,
	}
}

// NewNotFound - referenced entity absent
func NewNotFound(message string) *AppError {
	return newError(http.StatusNotFound, message, ErrNotFound)
}

// NewValidation - missing/invalid required field, out-of-range values
func NewValidation(message string) *AppError {
	return newError(http.StatusBadRequest, message, ErrValidation)
}

// NewDuplicate - unique constraint violated
func NewDuplicate(message string) *AppError {
	return newError(http.StatusBadRequest, message, ErrDuplicate)
}

// NewForbidden - actor lacks rights on the resource
func NewForbidden(message string) *AppError {
	return newError(http.StatusForbidden, message, ErrForbidden)
}

// NewUnauthorized - no/invalid identity
func NewUnauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, message, ErrUnauthorized)
}

// NewInternal wraps an unexpected failure
func NewInternal(message string, cause error) *AppError {
	return newError(http.StatusInternalServerError, message, cause)
}

// From extracts an *AppError from err, or wraps err as an internal error so
// handlers always have a status classification to work with.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("internal server error", err)
}
