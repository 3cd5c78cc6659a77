// Package apperror defines the application error type and its HTTP mapping.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an AppError.
type Code string

const (
	CodeInvalidParam       Code = "invalid_param"
	CodeValidationFailed   Code = "validation_failed"
	CodeGenerationFailed   Code = "generation_failed"
	CodeLLMProviderError   Code = "llm_provider_error"
	CodeConfiguration      Code = "configuration_error"
	CodeInternal           Code = "internal_error"
	CodeServiceUnavailable Code = "service_unavailable"
)

// AppError is an error carrying a code, a user-facing message and an HTTP status.
type AppError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError by code, so errors.Is works against the
// predefined values below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithDetail returns a copy with the detail set.
func (e *AppError) WithDetail(detail string) *AppError {
	c := *e
	c.Detail = detail
	return &c
}

// New creates an AppError.
func New(code Code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: StatusFor(code),
	}
}

// Wrap creates an AppError around err.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: StatusFor(code),
		Err:        err,
	}
}

// StatusFor maps a code to an HTTP status.
func StatusFor(code Code) int {
	switch code {
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeGenerationFailed, CodeLLMProviderError:
		return http.StatusBadGateway
	case CodeConfiguration, CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// As converts any error into an AppError, wrapping unknown errors as internal.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal error")
}

var (
	ErrMissingCredential    = New(CodeConfiguration, "API credential is required but was not found in the environment")
	ErrGeneratorUnavailable = New(CodeConfiguration, "content generator is not configured")
	ErrEmptyCompletion      = New(CodeLLMProviderError, "model returned no content")
	ErrValidationFailed     = New(CodeValidationFailed, "validation failed")
)
