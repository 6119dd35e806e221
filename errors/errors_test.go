package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew_RetryableDetection(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeAborted, true},
		{ErrCodeExternalService, true},
		{ErrCodeNotFound, false},
		{ErrCodeInvalidInput, false},
		{ErrCodeUnauthorized, false},
		{ErrCodeForbidden, false},
		{ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			e := New(tt.code, "msg", 500)
			if e.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", e.Retryable, tt.retryable)
			}
			if IsRetryableCode(tt.code) != tt.retryable {
				t.Errorf("IsRetryableCode(%s) = %v", tt.code, !tt.retryable)
			}
		})
	}
}

func TestDispatchConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"aborted zero", Aborted(0, nil), ErrCodeAborted, 0},
		{"aborted minus one", Aborted(-1, nil), ErrCodeAborted, -1},
		{"not found", NotFound("api/x"), ErrCodeNotFound, http.StatusNotFound},
		{"rejected", Rejected(map[string][]string{"f": {"v"}}), ErrCodeInvalidInput, http.StatusPreconditionFailed},
		{"unauthorized", Unauthorized("/p"), ErrCodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("/p"), ErrCodeForbidden, http.StatusForbidden},
		{"external", ExternalService(502), ErrCodeExternalService, 502},
		{"config", InvalidConfig("bad"), ErrCodeInvalidConfig, 0},
		{"internal", Internal(fmt.Errorf("boom")), ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", tt.err.HTTPStatus, tt.status)
			}
			if tt.err.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestRejected_CarriesViolations(t *testing.T) {
	v := map[string][]string{"field-with-violations": {"violation"}}
	e := Rejected(v)
	got, ok := e.Details["violations"].(map[string][]string)
	if !ok {
		t.Fatalf("expected violations detail, got %T", e.Details["violations"])
	}
	if got["field-with-violations"][0] != "violation" {
		t.Errorf("unexpected violations: %v", got)
	}
}

func TestAppError_ErrorFormat(t *testing.T) {
	e := New(ErrCodeNotFound, "missing", 404)
	if got := e.Error(); got != "NOT_FOUND: missing" {
		t.Errorf("got %q", got)
	}

	cause := fmt.Errorf("dial tcp: refused")
	e.WithCause(cause)
	if got := e.Error(); got != "NOT_FOUND: missing (cause: dial tcp: refused)" {
		t.Errorf("got %q", got)
	}
	if !stderrors.Is(e, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	e := New(ErrCodeInternal, "x", 500)
	e.WithDetail("a", 1).WithDetail("b", "two")
	if e.Details["a"] != 1 || e.Details["b"] != "two" {
		t.Errorf("unexpected details: %v", e.Details)
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", NotFound("api/x"))

	if !IsAppError(wrapped) {
		t.Fatal("expected IsAppError on wrapped error")
	}
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeNotFound {
		t.Errorf("AsAppError = %v, %v", appErr, ok)
	}
	if !HasCode(wrapped, ErrCodeNotFound) {
		t.Error("expected HasCode NOT_FOUND")
	}
	if HasCode(wrapped, ErrCodeForbidden) {
		t.Error("did not expect HasCode FORBIDDEN")
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected plain error not to convert")
	}
}
