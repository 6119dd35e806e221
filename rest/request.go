package rest

import (
	"encoding/json"

	"github.com/kbukum/restkit/headers"
)

// Payload is a raw response body.
type Payload []byte

// Decode unmarshals the JSON payload into v.
func (p Payload) Decode(v any) error {
	return json.Unmarshal(p, v)
}

// String returns the payload as text.
func (p Payload) String() string {
	return string(p)
}

// Violations maps a field name to the validation messages reported for it.
type Violations map[string][]string

// Field returns the messages for field and whether the field was reported.
func (v Violations) Field(field string) ([]string, bool) {
	msgs, ok := v[field]
	return msgs, ok
}

// Clone returns a copy whose message slices are not shared with v.
func (v Violations) Clone() Violations {
	out := make(Violations, len(v))
	for k, msgs := range v {
		out[k] = append([]string(nil), msgs...)
	}
	return out
}

// Callbacks are the optional lifecycle hooks of a dispatch. A nil slot is a no-op.
type Callbacks struct {
	Reset    func()
	Start    func()
	Stop     func()
	Error    func()
	NotFound func()
	Rejected func(Violations)
	Success  func(Payload)
}

// Request is a single dispatch. It is consumed once and must not be reused.
type Request struct {
	// Method is the HTTP method.
	Method string
	// URL is the target, absolute or relative to the transport's base URL.
	URL string
	// Payload is the request body, nil for none.
	Payload any
	// Headers are caller-supplied headers. The header chain never removes them
	// when its mappers cooperate.
	Headers headers.Headers
	// Credentials asks the transport to send and keep cookies.
	Credentials bool
	// Callbacks are the lifecycle hooks.
	Callbacks Callbacks
}
