package rest

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/kbukum/restkit/errors"
)

// Result is the classified outcome of a dispatch.
type Result struct {
	Outcome  Outcome
	Category Category
	// URL is the dispatched URL.
	URL string
	// Path is the navigation path published for AuthRequired.
	Path string
	// Violations are the decoded field violations for Rejected.
	Violations Violations
}

// Err returns the failure as an AppError, or nil on success.
func (r Result) Err() *errors.AppError {
	switch r.Category {
	case Succeeded:
		return nil
	case Aborted:
		return errors.Aborted(r.Outcome.Status, r.Outcome.Err)
	case NotFound:
		return errors.NotFound(r.URL)
	case Rejected:
		return errors.Rejected(r.Violations)
	case AuthRequired:
		if r.Outcome.Status == http.StatusForbidden {
			return errors.Forbidden(r.Path)
		}
		return errors.Unauthorized(r.Path)
	case Alert:
		return errors.ExternalService(r.Outcome.Status)
	default:
		return errors.Internal(fmt.Errorf("rest: unknown category %d", int(r.Category)))
	}
}

// Handle tracks an in-flight dispatch.
type Handle struct {
	done chan struct{}

	mu         sync.Mutex
	finished   bool
	result     Result
	onSuccess  []func(Payload)
	onComplete []func(Result)
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// Done is closed once Stop ran and every attached reaction returned. A
// reaction must not receive from Done of its own handle; it may call Wait.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the dispatch completes or ctx is done. Once the result is
// recorded Wait returns it without waiting for reactions, so reactions may
// call Wait on their own handle.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	h.mu.Lock()
	if h.finished {
		defer h.mu.Unlock()
		return h.result, nil
	}
	h.mu.Unlock()

	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// OnSuccess attaches a reaction that runs after the Success callback. It runs
// immediately when the dispatch already succeeded and never runs on failure.
func (h *Handle) OnSuccess(fn func(Payload)) *Handle {
	if fn == nil {
		return h
	}
	h.mu.Lock()
	if !h.finished {
		h.onSuccess = append(h.onSuccess, fn)
		h.mu.Unlock()
		return h
	}
	result := h.result
	h.mu.Unlock()

	if result.Category == Succeeded {
		fn(result.Outcome.Body)
	}
	return h
}

// OnComplete attaches a reaction that runs after the dispatch completes on
// either branch.
func (h *Handle) OnComplete(fn func(Result)) *Handle {
	if fn == nil {
		return h
	}
	h.mu.Lock()
	if !h.finished {
		h.onComplete = append(h.onComplete, fn)
		h.mu.Unlock()
		return h
	}
	result := h.result
	h.mu.Unlock()

	fn(result)
	return h
}

func (h *Handle) finish(result Result) {
	h.mu.Lock()
	h.finished = true
	h.result = result
	onSuccess, onComplete := h.onSuccess, h.onComplete
	h.onSuccess, h.onComplete = nil, nil
	h.mu.Unlock()

	if result.Category == Succeeded {
		for _, fn := range onSuccess {
			fn(result.Outcome.Body)
		}
	}
	for _, fn := range onComplete {
		fn(result)
	}
	close(h.done)
}
