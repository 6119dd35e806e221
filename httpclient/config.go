package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/restkit/security"
)

const (
	defaultName         = "http"
	defaultTimeout      = 30 * time.Second
	defaultRetryWaitMin = 100 * time.Millisecond
	defaultRetryWaitMax = 2 * time.Second
)

// Config configures the HTTP transport.
type Config struct {
	// Name is the component name. Defaults to "http".
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to relative request URLs.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout bounds each attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TLS configures the client side of TLS.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are sent with every request unless the request sets them.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// RetryMax is the number of retries after the first attempt. Zero sends
	// each request exactly once.
	RetryMax int `yaml:"retry_max" mapstructure:"retry_max" validate:"gte=0,lte=10"`

	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration `yaml:"retry_wait_min" mapstructure:"retry_wait_min"`
	RetryWaitMax time.Duration `yaml:"retry_wait_max" mapstructure:"retry_wait_max"`

	// RateLimit is the sustained requests per second. Zero disables throttling.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`

	// RateBurst is the token bucket size. Defaults to 1 when RateLimit is set.
	RateBurst int `yaml:"rate_burst" mapstructure:"rate_burst" validate:"gte=0"`

	// Tracing wraps the transport with otelhttp.
	Tracing bool `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RetryWaitMin <= 0 {
		c.RetryWaitMin = defaultRetryWaitMin
	}
	if c.RetryWaitMax <= 0 {
		c.RetryWaitMax = defaultRetryWaitMax
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		c.RateBurst = 1
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.RetryMax < 0 {
		return fmt.Errorf("httpclient: retry_max must not be negative")
	}
	if c.RetryWaitMax < c.RetryWaitMin {
		return fmt.Errorf("httpclient: retry_wait_max must be >= retry_wait_min")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("httpclient: rate_limit must not be negative")
	}
	if err := c.TLS.Validate(); err != nil {
		return fmt.Errorf("httpclient: %w", err)
	}
	return nil
}
