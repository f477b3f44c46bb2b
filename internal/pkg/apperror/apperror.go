package apperror

import "net/http"

// AppError is a status-coded error carried from services up to the HTTP layer.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest creates a 400 validation error.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NotFound creates a 404 error.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}
