package observability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/restkit/component"
)

// Component installs the tracer and meter providers on Start and flushes
// them on Stop. Disabled halves are skipped.
type Component struct {
	tracing TracerConfig
	meter   MeterConfig

	mu sync.Mutex
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates the telemetry component.
func NewComponent(tracing TracerConfig, meter MeterConfig) *Component {
	tracing.ApplyDefaults()
	meter.ApplyDefaults()
	return &Component{tracing: tracing, meter: meter}
}

// Name implements component.Component.
func (c *Component) Name() string { return "telemetry" }

// Start implements component.Component.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tracing.Enabled {
		tp, err := InitTracer(ctx, c.tracing)
		if err != nil {
			return err
		}
		c.tp = tp
	}
	if c.meter.Enabled {
		mp, err := InitMeter(ctx, c.meter)
		if err != nil {
			return err
		}
		c.mp = mp
	}
	return nil
}

// Stop implements component.Component.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	tp, mp := c.tp, c.mp
	c.tp, c.mp = nil, nil
	c.mu.Unlock()

	var errs []error
	if tp != nil {
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if mp != nil {
		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Health implements component.Component.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	details := "disabled"
	switch {
	case c.tracing.Enabled && c.meter.Enabled:
		details = "traces+metrics -> " + c.tracing.Endpoint
	case c.tracing.Enabled:
		details = "traces -> " + c.tracing.Endpoint
	case c.meter.Enabled:
		details = "metrics -> " + c.meter.Endpoint
	}
	return component.Description{Type: "otel", Details: details}
}
