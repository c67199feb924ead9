package serverutils

import "net/http"

// AppError is the error type services return so the handler middleware can
// map failures to HTTP status codes without string matching.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

func NewValidation(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

func NewForbidden(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

// NewUpstreamFailure marks a failed call to the AI engine. The caller's own
// message survives; no fake reply is synthesized.
func NewUpstreamFailure(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadGateway, Message: message, Err: err}
}
