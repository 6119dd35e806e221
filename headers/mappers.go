package headers

import (
	"github.com/google/uuid"
)

const (
	// HeaderAuthorization is the standard authorization header.
	HeaderAuthorization = "Authorization"
	// HeaderRequestID is the default request correlation header.
	HeaderRequestID = "X-Request-ID"
)

// Default sets key to value unless the header is already present.
func Default(key, value string) Mapper {
	return func(h Headers) Headers {
		if !h.Has(key) {
			h[key] = value
		}
		return h
	}
}

// Static merges a fixed set of defaults, keeping any header already present.
func Static(defaults map[string]string) Mapper {
	fixed := Headers(defaults).Clone()
	return func(h Headers) Headers {
		for k, v := range fixed {
			if !h.Has(k) {
				h[k] = v
			}
		}
		return h
	}
}

// RequestID adds a random UUID under header (HeaderRequestID when empty)
// unless the caller already supplied one.
func RequestID(header string) Mapper {
	if header == "" {
		header = HeaderRequestID
	}
	return func(h Headers) Headers {
		if !h.Has(header) {
			h[header] = uuid.NewString()
		}
		return h
	}
}

// TokenSource yields the token to send as a bearer credential.
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token() (string, error) { return f() }

// BearerToken sets "Authorization: Bearer <token>" from src unless an
// Authorization header is already present. When src fails or returns an
// empty token the headers pass through untouched.
func BearerToken(src TokenSource) Mapper {
	return func(h Headers) Headers {
		if h.Has(HeaderAuthorization) {
			return h
		}
		token, err := src.Token()
		if err != nil || token == "" {
			return h
		}
		h[HeaderAuthorization] = "Bearer " + token
		return h
	}
}
