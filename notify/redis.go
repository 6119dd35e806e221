package notify

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/restkit/rest"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	// Addr is host:port.
	Addr string `yaml:"addr" mapstructure:"addr"`
	// Password is optional.
	Password string `yaml:"password" mapstructure:"password"`
	// DB is the database number.
	DB int `yaml:"db" mapstructure:"db" validate:"gte=0"`
	// ChannelPrefix is prepended to the topic to form the channel name.
	ChannelPrefix string `yaml:"channel_prefix" mapstructure:"channel_prefix"`
	// PoolSize defaults to 10.
	PoolSize int `yaml:"pool_size" mapstructure:"pool_size"`
	// DialTimeout defaults to 5s.
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
}

func (c *RedisConfig) applyDefaults() {
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
}

func (c *RedisConfig) options() *goredis.Options {
	return &goredis.Options{
		Addr:        c.Addr,
		Password:    c.Password,
		DB:          c.DB,
		PoolSize:    c.PoolSize,
		DialTimeout: c.DialTimeout,
	}
}

// RedisPublisher publishes each notification to "<prefix><topic>".
type RedisPublisher struct {
	rdb    goredis.UniversalClient
	prefix string
	owned  bool
}

var _ rest.Publisher = (*RedisPublisher)(nil)

// NewRedisPublisher dials Redis and verifies the connection.
func NewRedisPublisher(ctx context.Context, cfg RedisConfig) (*RedisPublisher, error) {
	cfg.applyDefaults()
	if cfg.Addr == "" {
		return nil, fmt.Errorf("notify: redis addr is required")
	}
	rdb := goredis.NewClient(cfg.options())
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("notify: redis ping %s: %w", cfg.Addr, err)
	}
	return &RedisPublisher{rdb: rdb, prefix: cfg.ChannelPrefix, owned: true}, nil
}

// NewRedisPublisherFromClient publishes through an existing client, which
// the caller keeps ownership of.
func NewRedisPublisherFromClient(rdb goredis.UniversalClient, prefix string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, prefix: prefix}
}

// Channel returns the Redis channel used for topic.
func (p *RedisPublisher) Channel(topic string) string {
	return p.prefix + topic
}

// Publish implements rest.Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := NewMessage(topic, payload).Encode()
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, p.Channel(topic), data).Err(); err != nil {
		return fmt.Errorf("notify: redis publish %s: %w", topic, err)
	}
	return nil
}

// Ping checks the connection.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// Close closes the client when the publisher created it.
func (p *RedisPublisher) Close() error {
	if !p.owned {
		return nil
	}
	return p.rdb.Close()
}
