package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeBadRequest        = "BAD_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeStaleWrite        = "STALE_WRITE"
	CodePartialFailure    = "PARTIAL_FAILURE"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
	// Details is rendered alongside the message, e.g. the current record on a stale write.
	Details interface{}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// InvalidTransition rejects a status move that the entity's transition table does not allow.
func InvalidTransition(entity, from, to string) *AppError {
	return &AppError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("%s cannot move from %q to %q", entity, from, to),
		Status:  http.StatusUnprocessableEntity,
	}
}

// StaleWrite reports that the record changed since the caller last read it.
func StaleWrite(entity string, current interface{}) *AppError {
	return &AppError{
		Code:    CodeStaleWrite,
		Message: fmt.Sprintf("%s was modified by someone else, refresh and retry", entity),
		Status:  http.StatusConflict,
		Details: current,
	}
}

// PartialFailure reports a multi-step write that stopped at step.
func PartialFailure(step string, err error, details interface{}) *AppError {
	return &AppError{
		Code:    CodePartialFailure,
		Message: fmt.Sprintf("operation stopped at step %q", step),
		Status:  http.StatusInternalServerError,
		Err:     err,
		Details: details,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
