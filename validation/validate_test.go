package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/restkit/errors"
)

type nested struct {
	Secret string `mapstructure:"secret" validate:"required"`
}

type sample struct {
	BaseURL  string  `mapstructure:"base_url" validate:"omitempty,url"`
	RetryMax int     `mapstructure:"retry_max" validate:"gte=0,lte=10"`
	Header   string  `mapstructure:"request_id_header" validate:"omitempty,header"`
	Method   string  `validate:"omitempty,method"`
	Driver   string  `mapstructure:"driver" validate:"oneof=none memory redis kafka"`
	JWT      *nested `mapstructure:"jwt"`
	Embedded nested  `mapstructure:"embedded"`
}

func valid() sample {
	return sample{
		BaseURL:  "http://backend:8080",
		Header:   "X-Request-Id",
		Method:   "PUT",
		Driver:   "memory",
		Embedded: nested{Secret: "s"},
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_FieldKeys(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sample)
		key    string
		msg    string
	}{
		{"url", func(s *sample) { s.BaseURL = "not a url" }, "base_url", "must be a valid URL"},
		{"lte", func(s *sample) { s.RetryMax = 11 }, "retry_max", "must be at most 10"},
		{"gte", func(s *sample) { s.RetryMax = -1 }, "retry_max", "must be at least 0"},
		{"header", func(s *sample) { s.Header = "bad header" }, "request_id_header", "must be a valid header name"},
		{"method", func(s *sample) { s.Method = "FETCH" }, "method", "must be an HTTP method"},
		{"oneof", func(s *sample) { s.Driver = "nats" }, "driver", "must be one of: none memory redis kafka"},
		{"nested pointer", func(s *sample) { s.JWT = &nested{} }, "jwt.secret", "is required"},
		{"nested value", func(s *sample) { s.Embedded.Secret = "" }, "embedded.secret", "is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := Struct(s)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
			msgs := Fields(err)[tt.key]
			if len(msgs) != 1 || msgs[0] != tt.msg {
				t.Errorf("Fields[%q] = %v, want [%q] (all: %v)", tt.key, msgs, tt.msg, Fields(err))
			}
		})
	}
}

func TestStruct_CollectsAllFields(t *testing.T) {
	s := valid()
	s.BaseURL = "::"
	s.Driver = ""
	err := Struct(s)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(Fields(err)) != 2 {
		t.Errorf("expected 2 fields, got %v", Fields(err))
	}
	if !strings.Contains(err.Error(), "base_url") || !strings.Contains(err.Error(), "driver") {
		t.Errorf("message missing keys: %v", err)
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	err := Struct("plain string")
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
	if Fields(err) != nil {
		t.Error("expected no fields")
	}
}

func TestFields_ForeignError(t *testing.T) {
	if Fields(nil) != nil {
		t.Error("expected nil")
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Method":        "method",
		"RetryMax":      "retry_max",
		"ServiceConfig": "service_config",
		"lower":         "lower",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
