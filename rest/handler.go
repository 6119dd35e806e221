package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/kbukum/restkit/headers"
	"github.com/kbukum/restkit/logger"
)

// Handler runs the dispatch lifecycle. It is safe for concurrent use once
// constructed.
type Handler struct {
	transport Transport
	chain     *headers.Chain
	publisher Publisher
	location  Location
	log       *logger.Logger
	observers []Observer

	publishTimeout time.Duration
}

// DefaultPublishTimeout bounds each notification publish.
const DefaultPublishTimeout = 5 * time.Second

// Option configures a Handler.
type Option func(*Handler)

// WithHeaders sets the header chain applied to every dispatch.
func WithHeaders(chain *headers.Chain) Option {
	return func(h *Handler) { h.chain = chain }
}

// WithPublisher sets the notification publisher.
func WithPublisher(p Publisher) Option {
	return func(h *Handler) { h.publisher = p }
}

// WithPublishTimeout bounds how long a notification publish may block the
// completion of a dispatch. Non-positive values keep the default.
func WithPublishTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.publishTimeout = d
		}
	}
}

// WithLocation sets the source of the current navigation path.
func WithLocation(l Location) Option {
	return func(h *Handler) {
		if l != nil {
			h.location = l
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithObserver adds an observer notified after each completed dispatch.
func WithObserver(o Observer) Option {
	return func(h *Handler) {
		if o != nil {
			h.observers = append(h.observers, o)
		}
	}
}

// NewHandler creates a Handler sending through transport.
func NewHandler(transport Transport, opts ...Option) *Handler {
	h := &Handler{
		transport: transport,
		chain:     headers.NewChain(),
		location:  StaticLocation(""),
		log:       logger.Nop(),

		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.WithComponent("rest")
	return h
}

// Headers returns the header chain so mappers can be registered during setup.
func (h *Handler) Headers() *headers.Chain {
	return h.chain
}

// Dispatch runs Reset and Start on the calling goroutine, enriches headers,
// then sends the request and classifies the outcome on a new goroutine.
// The returned Handle completes after Stop ran.
func (h *Handler) Dispatch(ctx context.Context, req *Request) *Handle {
	cb := req.Callbacks
	call(cb.Reset)
	call(cb.Start)

	treq := &TransportRequest{
		Method:      req.Method,
		URL:         req.URL,
		Payload:     req.Payload,
		Headers:     h.chain.Apply(req.Headers),
		Credentials: req.Credentials,
	}

	h.log.Debug("dispatching request", logger.Fields(
		logger.FieldMethod, treq.Method,
		logger.FieldURL, treq.URL,
	))

	handle := newHandle()
	go h.complete(ctx, treq, cb, handle, time.Now())
	return handle
}

func (h *Handler) complete(ctx context.Context, req *TransportRequest, cb Callbacks, handle *Handle, started time.Time) {
	outcome := h.transport.Send(ctx, req)
	result := Result{
		Outcome:  outcome,
		Category: Classify(outcome),
		URL:      req.URL,
	}
	fields := logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.URL,
		logger.FieldStatus, outcome.Status,
		"status_text", StatusText(outcome.Status),
		logger.FieldCategory, result.Category.String(),
	)

	switch result.Category {
	case Succeeded:
		if cb.Success != nil {
			cb.Success(outcome.Body)
		}
	case Aborted:
		h.log.Debug("request aborted", fields)
	case NotFound:
		h.log.Debug("resource not found", fields)
		call(cb.NotFound)
	case Rejected:
		violations, err := DecodeViolations(outcome.Body)
		if err != nil {
			h.log.Warn("undecodable violations body", logger.Fields(
				logger.FieldURL, req.URL,
				logger.FieldError, err.Error(),
			))
		}
		result.Violations = violations
		h.log.Debug("submission rejected", fields)
		if cb.Rejected != nil {
			cb.Rejected(violations)
		}
	case AuthRequired:
		result.Path = h.location.Path()
		h.log.Warn("authentication required", fields)
		h.publish(ctx, TopicAuthRequired, result.Path)
	default:
		h.log.Warn("unexpected response", fields)
		h.publish(ctx, TopicSystemAlert, outcome.Status)
	}

	if result.Category.Failed() {
		call(cb.Error)
	}
	call(cb.Stop)

	event := DispatchEvent{
		Method:   req.Method,
		URL:      req.URL,
		Status:   outcome.Status,
		Category: result.Category,
		Duration: time.Since(started),
	}
	h.log.Debug("dispatch completed", logger.MergeWithDuration(fields, event.Duration))
	for _, o := range h.observers {
		o.ObserveDispatch(ctx, event)
	}

	handle.finish(result)
}

// publish ignores failures after logging them; a broken bus must not stop
// the lifecycle. The publish outlives a cancelled dispatch context but is
// bounded by publishTimeout, so a stalled publisher cannot hold Stop back.
func (h *Handler) publish(ctx context.Context, topic string, payload any) {
	if h.publisher == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.publishTimeout)
	defer cancel()
	if err := h.publisher.Publish(pctx, topic, payload); err != nil {
		h.log.Warn("publish failed", logger.ErrorFields(topic, err))
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// StatusText is http.StatusText extended to the abort statuses.
func StatusText(status int) string {
	switch status {
	case StatusNoResponse:
		return "No Response"
	case StatusCancelled:
		return "Cancelled"
	default:
		return http.StatusText(status)
	}
}
