package notify

import (
	"fmt"
	"slices"
)

// Drivers.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverKafka  = "kafka"
)

var drivers = []string{DriverNone, DriverMemory, DriverRedis, DriverKafka}

// Config selects and configures the notification backend.
type Config struct {
	// Driver is none, memory (default), redis or kafka.
	Driver string      `yaml:"driver" mapstructure:"driver"`
	Redis  RedisConfig `yaml:"redis" mapstructure:"redis"`
	Kafka  KafkaConfig `yaml:"kafka" mapstructure:"kafka"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	c.Redis.applyDefaults()
	c.Kafka.applyDefaults()
}

// Validate checks the selected driver's settings.
func (c *Config) Validate() error {
	if !slices.Contains(drivers, c.Driver) {
		return fmt.Errorf("notify: unknown driver %q (valid: %v)", c.Driver, drivers)
	}
	switch c.Driver {
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("notify: redis.addr is required for driver redis")
		}
	case DriverKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("notify: kafka.brokers is required for driver kafka")
		}
	}
	return nil
}
