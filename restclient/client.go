package restclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/kbukum/restkit/rest"
)

// SuccessHandler receives the body and status of a successful call.
type SuccessHandler func(payload rest.Payload, status int)

// ErrorHandler receives the body and status of a failed call.
type ErrorHandler func(body rest.Payload, status int)

// Client issues single requests relative to a base URI.
type Client struct {
	transport rest.Transport
	baseURI   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURI sets the prefix joined to every path.
func WithBaseURI(uri string) Option {
	return func(c *Client) { c.baseURI = uri }
}

// New creates a Client sending through transport.
func New(transport rest.Transport, opts ...Option) *Client {
	c := &Client{transport: transport}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURI returns the configured base URI.
func (c *Client) BaseURI() string {
	return c.baseURI
}

// Get issues a GET for path.
func (c *Client) Get(ctx context.Context, path string, onSuccess SuccessHandler, onError ErrorHandler) rest.Outcome {
	return c.do(ctx, http.MethodGet, path, nil, onSuccess, onError)
}

// Put issues a PUT of payload to path.
func (c *Client) Put(ctx context.Context, path string, payload any, onSuccess SuccessHandler, onError ErrorHandler) rest.Outcome {
	return c.do(ctx, http.MethodPut, path, payload, onSuccess, onError)
}

// Post issues a POST of payload to path.
func (c *Client) Post(ctx context.Context, path string, payload any, onSuccess SuccessHandler, onError ErrorHandler) rest.Outcome {
	return c.do(ctx, http.MethodPost, path, payload, onSuccess, onError)
}

// Delete issues a DELETE for path, with an optional payload.
func (c *Client) Delete(ctx context.Context, path string, payload any, onSuccess SuccessHandler, onError ErrorHandler) rest.Outcome {
	return c.do(ctx, http.MethodDelete, path, payload, onSuccess, onError)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, onSuccess SuccessHandler, onError ErrorHandler) rest.Outcome {
	outcome := c.transport.Send(ctx, &rest.TransportRequest{
		Method:  method,
		URL:     c.join(path),
		Payload: payload,
	})
	if outcome.Succeeded() {
		if onSuccess != nil {
			onSuccess(outcome.Body, outcome.Status)
		}
	} else if onError != nil {
		onError(outcome.Body, outcome.Status)
	}
	return outcome
}

func (c *Client) join(path string) string {
	switch {
	case c.baseURI == "":
		return path
	case strings.HasSuffix(c.baseURI, "/"):
		return c.baseURI + path
	default:
		return c.baseURI + "/" + path
	}
}
