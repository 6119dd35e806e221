package rest

import (
	"context"
	"time"
)

// DispatchEvent describes a completed dispatch.
type DispatchEvent struct {
	Method   string
	URL      string
	Status   int
	Category Category
	Duration time.Duration
}

// Observer is notified once per completed dispatch, after Stop.
type Observer interface {
	ObserveDispatch(ctx context.Context, ev DispatchEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev DispatchEvent)

// ObserveDispatch implements Observer.
func (f ObserverFunc) ObserveDispatch(ctx context.Context, ev DispatchEvent) {
	f(ctx, ev)
}
