package bootstrap

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kbukum/restkit/headers"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/rest"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	transport       rest.Transport
	publisher       rest.Publisher
	location        rest.Location
	registry        *prometheus.Registry
	mappers         []headers.Mapper
	observers       []rest.Observer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{gracefulTimeout: 15 * time.Second}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the application logger. Without it the logger is built
// from the Logging section of the config.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout bounds Stop.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = d }
}

// WithTransport replaces the HTTP transport component.
func WithTransport(t rest.Transport) Option {
	return func(o *appOptions) { o.transport = t }
}

// WithPublisher replaces the notification component.
func WithPublisher(p rest.Publisher) Option {
	return func(o *appOptions) { o.publisher = p }
}

// WithLocation replaces the default path tracker.
func WithLocation(l rest.Location) Option {
	return func(o *appOptions) { o.location = l }
}

// WithRegistry registers dispatch metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *appOptions) { o.registry = reg }
}

// WithMapper registers m after the configured header mappers.
func WithMapper(m headers.Mapper) Option {
	return func(o *appOptions) { o.mappers = append(o.mappers, m) }
}

// WithObserver adds a dispatch observer.
func WithObserver(obs rest.Observer) Option {
	return func(o *appOptions) { o.observers = append(o.observers, obs) }
}
