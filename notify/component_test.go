package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/restkit/component"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/rest"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default memory", Config{}, false},
		{"none", Config{Driver: DriverNone}, false},
		{"unknown", Config{Driver: "nats"}, true},
		{"redis without addr", Config{Driver: DriverRedis}, true},
		{"kafka without brokers", Config{Driver: DriverKafka}, true},
		{"redis ok", Config{Driver: DriverRedis, Redis: RedisConfig{Addr: "localhost:6379"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ApplyDefaults()
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComponent_Memory(t *testing.T) {
	ctx := context.Background()
	c := NewComponent(Config{}, logger.Nop())

	assert.NoError(t, c.Publish(ctx, "t", 1), "publish before start is a no-op")
	assert.Equal(t, component.StatusUnhealthy, c.Health(ctx).Status)

	require.NoError(t, c.Start(ctx))
	sub := c.Memory().Subscribe(rest.TopicSystemAlert)
	defer sub.Close()

	require.NoError(t, c.Publish(ctx, rest.TopicSystemAlert, 502))
	select {
	case msg := <-sub.C():
		assert.Equal(t, 502, msg.Payload)
	case <-time.After(time.Second):
		t.Fatal("no message")
	}
	assert.Equal(t, component.StatusHealthy, c.Health(ctx).Status)
	assert.Equal(t, "memory", c.Describe().Details)
	require.NoError(t, c.Stop(ctx))
	assert.Nil(t, c.Memory())
}

func TestComponent_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	c := NewComponent(Config{Driver: DriverRedis, Redis: RedisConfig{Addr: mr.Addr()}}, logger.Nop())

	require.NoError(t, c.Start(ctx))
	assert.True(t, c.Health(ctx).Healthy())
	assert.Equal(t, "redis "+mr.Addr(), c.Describe().Details)
	require.NoError(t, c.Publish(ctx, rest.TopicAuthRequired, "/x"))

	mr.Close()
	assert.False(t, c.Health(ctx).Healthy())
	assert.NoError(t, c.Stop(ctx))
}

func TestComponent_StartInvalid(t *testing.T) {
	c := NewComponent(Config{Driver: DriverKafka}, logger.Nop())
	assert.Error(t, c.Start(context.Background()))
}

func TestComponent_None(t *testing.T) {
	ctx := context.Background()
	c := NewComponent(Config{Driver: DriverNone}, logger.Nop())
	require.NoError(t, c.Start(ctx))
	assert.NoError(t, c.Publish(ctx, "t", 1))
	assert.True(t, c.Health(ctx).Healthy())
}
