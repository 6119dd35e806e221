package testutil

import (
	"context"
	"sync"

	"github.com/kbukum/restkit/rest"
)

// Transport is a scripted rest.Transport. Outcomes are returned in order; the
// last one repeats once the script runs out. An empty script answers 200.
type Transport struct {
	mu       sync.Mutex
	outcomes []rest.Outcome
	requests []rest.TransportRequest
	onSend   func(*rest.TransportRequest)
	gate     chan struct{}
}

var _ rest.Transport = (*Transport)(nil)

// NewTransport creates a Transport answering with outcomes.
func NewTransport(outcomes ...rest.Outcome) *Transport {
	return &Transport{outcomes: outcomes}
}

// OnSend registers fn to run inside Send before the outcome is returned.
func (t *Transport) OnSend(fn func(*rest.TransportRequest)) *Transport {
	t.mu.Lock()
	t.onSend = fn
	t.mu.Unlock()
	return t
}

// Hold makes Send block until Release is called or its context is done.
// A cancelled context is reported as rest.StatusCancelled.
func (t *Transport) Hold() *Transport {
	t.mu.Lock()
	t.gate = make(chan struct{})
	t.mu.Unlock()
	return t
}

// Release unblocks held Send calls.
func (t *Transport) Release() {
	t.mu.Lock()
	gate := t.gate
	t.gate = nil
	t.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

// Send implements rest.Transport.
func (t *Transport) Send(ctx context.Context, req *rest.TransportRequest) rest.Outcome {
	t.mu.Lock()
	t.requests = append(t.requests, *req)
	onSend, gate := t.onSend, t.gate
	var outcome rest.Outcome
	switch len(t.outcomes) {
	case 0:
		outcome = rest.Success(200, nil)
	case 1:
		outcome = t.outcomes[0]
	default:
		outcome = t.outcomes[0]
		t.outcomes = t.outcomes[1:]
	}
	t.mu.Unlock()

	if onSend != nil {
		onSend(req)
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return rest.Abort(rest.StatusCancelled, ctx.Err())
		}
	}
	return outcome
}

// Requests returns the requests sent so far.
func (t *Transport) Requests() []rest.TransportRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]rest.TransportRequest(nil), t.requests...)
}

// Last returns the most recent request.
func (t *Transport) Last() (rest.TransportRequest, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return rest.TransportRequest{}, false
	}
	return t.requests[len(t.requests)-1], true
}

// Published is one notification recorded by Publisher.
type Published struct {
	Topic   string
	Payload any
}

// Publisher is a rest.Publisher that records every notification.
type Publisher struct {
	mu        sync.Mutex
	published []Published
	err       error
}

var _ rest.Publisher = (*Publisher)(nil)

// NewPublisher creates a recording publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// FailWith makes Publish record the notification and then return err.
func (p *Publisher) FailWith(err error) *Publisher {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
	return p
}

// Publish implements rest.Publisher.
func (p *Publisher) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, Published{Topic: topic, Payload: payload})
	return p.err
}

// Published returns every recorded notification.
func (p *Publisher) Published() []Published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Published(nil), p.published...)
}

// Topic returns the payloads published on topic.
func (p *Publisher) Topic(topic string) []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []any
	for _, m := range p.published {
		if m.Topic == topic {
			out = append(out, m.Payload)
		}
	}
	return out
}

// NewLocation returns a settable rest.Location positioned at path.
func NewLocation(path string) *rest.PathTracker {
	return rest.NewPathTracker(path)
}
