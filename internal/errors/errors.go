package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"distfit/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    FromDomain(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise the code
// derived from the domain error kind
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return FromDomain(err)
}

// Predefined error codes
const (
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodeInvalidOption  = "INVALID_OPTION"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeNotFound       = "NOT_FOUND"
	CodeFitFailed      = "FIT_FAILED"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeReadFailed     = "READ_FAILED"
	CodeRequestAborted = "REQUEST_ABORTED"
)

// FromDomain maps a domain error kind to an application error code
func FromDomain(err error) string {
	switch {
	case err == nil:
		return ""
	case core.IsOptionError(err):
		return CodeInvalidOption
	case core.IsDatasetError(err):
		return CodeInvalidInput
	case stderrors.Is(err, core.ErrAllFamiliesFailed):
		return CodeFitFailed
	case stderrors.Is(err, core.ErrUnknownFamily):
		return CodeNotFound
	}
	return CodeInternalError
}

// HTTPStatus maps an error code to a response status
func HTTPStatus(code string) int {
	switch code {
	case CodeInvalidOption, CodeInvalidInput, CodeConfigInvalid, CodeReadFailed:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeFitFailed:
		return http.StatusUnprocessableEntity
	case CodeRequestAborted:
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func ReadFailed(source string, cause error) *AppError {
	return &AppError{
		Code:    CodeReadFailed,
		Message: fmt.Sprintf("failed to read %s", source),
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
