package rest

import (
	"context"
	"sync"
)

// Notification topics published by the handler.
const (
	// TopicAuthRequired carries the current navigation path (string) on 401/403.
	TopicAuthRequired = "checkpoint.auth.required"
	// TopicSystemAlert carries the HTTP status (int) of an unexpected failure.
	TopicSystemAlert = "system.alert"
)

// Publisher delivers notifications to the rest of the application.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, topic string, payload any) error

// Publish implements Publisher.
func (f PublisherFunc) Publish(ctx context.Context, topic string, payload any) error {
	return f(ctx, topic, payload)
}

// Location reports the current navigation path.
type Location interface {
	Path() string
}

// LocationFunc adapts a function to Location.
type LocationFunc func() string

// Path implements Location.
func (f LocationFunc) Path() string { return f() }

// StaticLocation is a Location that never changes.
type StaticLocation string

// Path implements Location.
func (s StaticLocation) Path() string { return string(s) }

// PathTracker is a Location the application updates as it navigates.
type PathTracker struct {
	mu   sync.RWMutex
	path string
}

// NewPathTracker creates a tracker positioned at path.
func NewPathTracker(path string) *PathTracker {
	return &PathTracker{path: path}
}

// Set records the current path.
func (t *PathTracker) Set(path string) {
	t.mu.Lock()
	t.path = path
	t.mu.Unlock()
}

// Path implements Location.
func (t *PathTracker) Path() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.path
}
