package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Transport-level errors
const (
	// ErrCodeAborted indicates the request never produced a response (status 0 or -1).
	ErrCodeAborted ErrorCode = "ABORTED"
	// ErrCodeExternalService indicates the backend answered with an unexpected status.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the submission was rejected with field violations.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidConfig indicates a restkit component was configured incorrectly.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Authentication/Authorization errors
const (
	// ErrCodeUnauthorized indicates the request requires authentication.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the request is forbidden.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeAborted:         true,
	ErrCodeExternalService: true,
}

// IsRetryableCode returns true if re-dispatching the same request may succeed.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
