package bootstrap

import (
	"fmt"

	"github.com/kbukum/restkit/config"
	"github.com/kbukum/restkit/headers"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/metrics"
	"github.com/kbukum/restkit/notify"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/validation"
	"github.com/kbukum/restkit/version"
)

// HeadersConfig declares the header mappers registered at startup.
type HeadersConfig struct {
	// Defaults are merged into every request unless the request sets them.
	Defaults map[string]string `yaml:"defaults" mapstructure:"defaults"`
	// RequestIDHeader enables a per-request UUID under this name.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header" validate:"omitempty,header"`
	// JWT enables a signed bearer token per request.
	JWT *headers.JWTConfig `yaml:"jwt" mapstructure:"jwt"`
}

// Config is the full restkit service configuration.
//
//	name: forms
//	http:
//	  base_url: https://backend.internal
//	notify:
//	  driver: redis
//	  redis:
//	    addr: localhost:6379
//	headers:
//	  request_id_header: X-Request-Id
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURI prefixes the paths given to the verb client.
	BaseURI string                     `yaml:"base_uri" mapstructure:"base_uri"`
	HTTP    httpclient.Config          `yaml:"http" mapstructure:"http"`
	Notify  notify.Config              `yaml:"notify" mapstructure:"notify"`
	Headers HeadersConfig              `yaml:"headers" mapstructure:"headers"`
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Meter   observability.MeterConfig  `yaml:"meter" mapstructure:"meter"`
	Metrics metrics.Config             `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults fills in zero-value fields of every section.
func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.HTTP.ApplyDefaults()
	c.Notify.ApplyDefaults()
	c.Metrics.ApplyDefaults()
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = c.Name
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = c.Version
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	c.Tracing.ApplyDefaults()
	if c.Meter.ServiceName == "" {
		c.Meter.ServiceName = c.Name
	}
	if c.Meter.ServiceVersion == "" {
		c.Meter.ServiceVersion = c.Version
	}
	if c.Meter.Environment == "" {
		c.Meter.Environment = c.Environment
	}
	c.Meter.ApplyDefaults()
}

// Validate checks struct tags first, then each section's own rules.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Struct(c); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("config.http: %w", err)
	}
	if err := c.Notify.Validate(); err != nil {
		return fmt.Errorf("config.notify: %w", err)
	}
	return nil
}

// LoadConfig reads the configuration for service, then applies defaults and
// validates it.
func LoadConfig(service string, opts ...config.Option) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(service, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = service
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
