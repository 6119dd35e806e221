package scoped

import (
	"context"

	"github.com/kbukum/restkit/rest"
)

// Dispatcher runs a rest request. *rest.Handler satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *rest.Request) *rest.Handle
}

// Handler dispatches requests bound to a State.
type Handler struct {
	next Dispatcher
}

// NewHandler wraps next.
func NewHandler(next Dispatcher) *Handler {
	return &Handler{next: next}
}

// Dispatch sends req with Reset, Start, Stop and Rejected bound to state.
// Caller-supplied hooks in those slots are replaced; Success, Error and
// NotFound pass through unchanged.
func (h *Handler) Dispatch(ctx context.Context, state *State, req *rest.Request) *rest.Handle {
	bound := *req
	bound.Callbacks.Reset = state.reset
	bound.Callbacks.Start = func() { state.setWorking(true) }
	bound.Callbacks.Stop = func() { state.setWorking(false) }
	bound.Callbacks.Rejected = state.SetViolations
	return h.next.Dispatch(ctx, &bound)
}
