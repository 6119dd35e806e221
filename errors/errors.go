package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified restkit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if re-dispatching may succeed.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status code that produced this error (0 or -1 when aborted).
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Dispatch outcome constructors ---

// Aborted creates an AppError for a request that produced no response.
func Aborted(status int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeAborted, Message: "The request was aborted before a response arrived.",
		HTTPStatus: status, Retryable: true, Cause: cause,
	}
}

// NotFound creates an AppError for a 404 answer on the given URL.
func NotFound(url string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: "The requested resource was not found.",
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"url": url},
	}
}

// Rejected creates an AppError for a 412 answer carrying field violations.
func Rejected(violations map[string][]string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("The submission was rejected on %d field(s).", len(violations)),
		HTTPStatus: http.StatusPreconditionFailed, Retryable: false,
		Details: map[string]any{"violations": violations},
	}
}

// Unauthorized creates an AppError for a 401 answer.
func Unauthorized(path string) *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Authentication required.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
		Details: map[string]any{"path": path},
	}
}

// Forbidden creates an AppError for a 403 answer.
func Forbidden(path string) *AppError {
	return &AppError{
		Code: ErrCodeForbidden, Message: "You don't have permission to perform this action.",
		HTTPStatus: http.StatusForbidden, Retryable: false,
		Details: map[string]any{"path": path},
	}
}

// ExternalService creates an AppError for any other unexpected status.
func ExternalService(status int) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The backend answered with HTTP %d.", status),
		HTTPStatus: status, Retryable: true,
	}
}

// InvalidConfig creates an AppError for a configuration problem.
func InvalidConfig(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: message,
		HTTPStatus: 0, Retryable: false,
	}
}

// Internal creates an AppError wrapping an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
