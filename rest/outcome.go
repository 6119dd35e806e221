package rest

import (
	"context"

	"github.com/kbukum/restkit/headers"
)

const (
	// StatusNoResponse is reported when the request never reached the server.
	StatusNoResponse = 0
	// StatusCancelled is reported when the request was cancelled or timed out.
	StatusCancelled = -1
)

// Outcome is the single result a transport produces for a request.
type Outcome struct {
	// Status is the HTTP status, or StatusNoResponse/StatusCancelled.
	Status int
	// Body is the response body, possibly empty.
	Body Payload
	// Err is the transport error behind an aborted outcome, if any.
	Err error

	ok bool
}

// Success builds a successful outcome.
func Success(status int, body Payload) Outcome {
	return Outcome{Status: status, Body: body, ok: true}
}

// Failure builds a failed outcome.
func Failure(status int, body Payload) Outcome {
	return Outcome{Status: status, Body: body}
}

// Abort builds a failed outcome for a request that produced no response.
func Abort(status int, err error) Outcome {
	return Outcome{Status: status, Err: err}
}

// Succeeded reports whether the transport classified the outcome as a success.
func (o Outcome) Succeeded() bool {
	return o.ok
}

// TransportRequest is what the handler hands to the Transport after header
// enrichment.
type TransportRequest struct {
	Method      string
	URL         string
	Payload     any
	Headers     headers.Headers
	Credentials bool
}

// Transport performs the network call. Send blocks until the outcome is known
// and must report a cancelled ctx as StatusCancelled.
type Transport interface {
	Send(ctx context.Context, req *TransportRequest) Outcome
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *TransportRequest) Outcome

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, req *TransportRequest) Outcome {
	return f(ctx, req)
}
