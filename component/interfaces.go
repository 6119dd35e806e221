package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Healthy reports whether the status is StatusHealthy.
func (h Health) Healthy() bool {
	return h.Status == StatusHealthy
}

// Component is a lifecycle-managed piece of infrastructure.
type Component interface {
	// Name returns the unique registration name.
	Name() string
	// Start acquires the component's resources.
	Start(ctx context.Context) error
	// Stop releases them.
	Stop(ctx context.Context) error
	// Health reports the current state.
	Health(ctx context.Context) Health
}

// Description is a one-line summary printed at startup.
type Description struct {
	// Name is the display name. Empty means Component.Name().
	Name string
	// Type categorizes the component, e.g. "http-transport" or "redis-publisher".
	Type string
	// Details is free text such as "https://api.example.com timeout=30s".
	Details string
}

// Describable is optionally implemented by components to self-report in the
// startup summary.
type Describable interface {
	Describe() Description
}
