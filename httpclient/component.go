package httpclient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kbukum/restkit/component"
	"github.com/kbukum/restkit/rest"
)

// ErrNotStarted is reported by a Component used before Start.
var ErrNotStarted = errors.New("httpclient: component not started")

// Component manages an Adapter's lifecycle. It is itself a rest.Transport so
// it can be handed to rest.NewHandler before the application starts.
type Component struct {
	config Config
	opts   []Option

	mu      sync.RWMutex
	adapter *Adapter
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
	_ rest.Transport        = (*Component)(nil)
)

// NewComponent creates a component; the adapter is built in Start.
func NewComponent(cfg Config, opts ...Option) *Component {
	cfg.ApplyDefaults()
	return &Component{config: cfg, opts: opts}
}

// Name implements component.Component.
func (c *Component) Name() string {
	return c.config.Name
}

// Start implements component.Component.
func (c *Component) Start(_ context.Context) error {
	a, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.adapter = a
	c.mu.Unlock()
	return nil
}

// Stop implements component.Component.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	a := c.adapter
	c.adapter = nil
	c.mu.Unlock()
	if a == nil {
		return nil
	}
	return a.Close(ctx)
}

// Health implements component.Component.
func (c *Component) Health(_ context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.Adapter() == nil {
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	}
	return h
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("timeout=%s retries=%d", c.config.Timeout, c.config.RetryMax)
	if c.config.BaseURL != "" {
		details = c.config.BaseURL + " " + details
	}
	return component.Description{Name: "HTTP Transport", Type: "http-transport", Details: details}
}

// Adapter returns the running adapter, or nil before Start.
func (c *Component) Adapter() *Adapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adapter
}

// Send implements rest.Transport.
func (c *Component) Send(ctx context.Context, req *rest.TransportRequest) rest.Outcome {
	a := c.Adapter()
	if a == nil {
		return rest.Abort(rest.StatusNoResponse, ErrNotStarted)
	}
	return a.Send(ctx, req)
}
