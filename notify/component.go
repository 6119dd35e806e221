package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kbukum/restkit/component"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/rest"
)

// Component builds the configured publisher on Start and closes it on Stop.
// Publishing before Start or with driver "none" is a silent no-op.
type Component struct {
	cfg Config
	log *logger.Logger

	mu     sync.RWMutex
	pub    rest.Publisher
	memory *MemoryBus
	closer func() error
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
	_ rest.Publisher        = (*Component)(nil)
)

// NewComponent creates a notification component.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Component{cfg: cfg, log: log.WithComponent("notify")}
}

// Name implements component.Component.
func (c *Component) Name() string { return "notify" }

// Start implements component.Component.
func (c *Component) Start(ctx context.Context) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	var (
		pub    rest.Publisher
		memory *MemoryBus
		closer func() error
	)
	switch c.cfg.Driver {
	case DriverMemory:
		memory = NewMemoryBus(WithBusLogger(c.log))
		pub = memory
	case DriverRedis:
		p, err := NewRedisPublisher(ctx, c.cfg.Redis)
		if err != nil {
			return err
		}
		pub, closer = p, p.Close
	case DriverKafka:
		p, err := NewKafkaPublisher(c.cfg.Kafka)
		if err != nil {
			return err
		}
		pub, closer = p, p.Close
	}

	c.mu.Lock()
	c.pub, c.memory, c.closer = pub, memory, closer
	c.mu.Unlock()

	c.log.Info("notification publisher started", logger.Fields("driver", c.cfg.Driver))
	return nil
}

// Stop implements component.Component.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	closer := c.closer
	c.pub, c.memory, c.closer = nil, nil, nil
	c.mu.Unlock()
	if closer == nil {
		return nil
	}
	if err := closer(); err != nil {
		return fmt.Errorf("notify: close %s: %w", c.cfg.Driver, err)
	}
	return nil
}

// Health implements component.Component.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	c.mu.RLock()
	pub := c.pub
	c.mu.RUnlock()

	if c.cfg.Driver == DriverNone {
		return h
	}
	if pub == nil {
		h.Status, h.Message = component.StatusUnhealthy, "not started"
		return h
	}
	if rp, ok := pub.(*RedisPublisher); ok {
		if err := rp.Ping(ctx); err != nil {
			h.Status, h.Message = component.StatusUnhealthy, err.Error()
		}
	}
	return h
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	details := c.cfg.Driver
	switch c.cfg.Driver {
	case DriverRedis:
		details += " " + c.cfg.Redis.Addr
	case DriverKafka:
		details += " " + strings.Join(c.cfg.Kafka.Brokers, ",")
	}
	return component.Description{Name: "Notifications", Type: "publisher", Details: details}
}

// Publish implements rest.Publisher.
func (c *Component) Publish(ctx context.Context, topic string, payload any) error {
	c.mu.RLock()
	pub := c.pub
	c.mu.RUnlock()
	if pub == nil {
		return nil
	}
	return pub.Publish(ctx, topic, payload)
}

// Memory returns the in-process bus when the driver is memory, for
// subscribing to notifications inside the application.
func (c *Component) Memory() *MemoryBus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memory
}
