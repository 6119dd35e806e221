package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/restkit/rest"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	sub := bus.Subscribe(rest.TopicAuthRequired)
	defer sub.Close()
	other := bus.Subscribe(rest.TopicSystemAlert)
	defer other.Close()

	require.NoError(t, bus.Publish(context.Background(), rest.TopicAuthRequired, "/current/path"))

	select {
	case msg := <-sub.C():
		assert.Equal(t, rest.TopicAuthRequired, msg.Topic)
		assert.Equal(t, "/current/path", msg.Payload)
		assert.NotEmpty(t, msg.ID)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
	assert.Empty(t, other.C())
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), "nobody", 1))
}

func TestMemoryBus_FullBufferDrops(t *testing.T) {
	bus := NewMemoryBus()
	stalled := bus.Subscribe("t")
	defer stalled.Close()
	live := bus.Subscribe("t")
	defer live.Close()

	for i := 0; i < subscriptionBuffer; i++ {
		require.NoError(t, bus.Publish(context.Background(), "t", i))
		<-live.C()
	}

	done := make(chan error, 1)
	go func() { done <- bus.Publish(context.Background(), "t", "overflow") }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	assert.Equal(t, uint64(1), bus.Dropped())

	msg := <-live.C()
	assert.Equal(t, "overflow", msg.Payload)
	assert.Len(t, stalled.C(), subscriptionBuffer)
}

func TestMemoryBus_PublishAfterCancel(t *testing.T) {
	bus := NewMemoryBus()
	sub := bus.Subscribe("t")
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bus.Publish(ctx, "t", 1), context.Canceled)
	assert.Empty(t, sub.C())
}

func TestSubscription_CloseDuringFullPublish(t *testing.T) {
	bus := NewMemoryBus()
	for round := 0; round < 50; round++ {
		sub := bus.Subscribe("t")
		for i := 0; i < subscriptionBuffer; i++ {
			require.NoError(t, bus.Publish(context.Background(), "t", i))
		}

		var wg sync.WaitGroup
		for p := 0; p < 4; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					assert.NoError(t, bus.Publish(context.Background(), "t", i))
				}
			}()
		}
		require.NoError(t, sub.Close())
		wg.Wait()

		drained := 0
		for range sub.C() {
			drained++
		}
		assert.Equal(t, subscriptionBuffer, drained)
	}
}

func TestSubscription_CloseTwice(t *testing.T) {
	bus := NewMemoryBus()
	sub := bus.Subscribe("t")
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	_, open := <-sub.C()
	assert.False(t, open)
	assert.NoError(t, bus.Publish(context.Background(), "t", 1))
}

func TestMessage_RoundTrip(t *testing.T) {
	data, err := NewMessage(rest.TopicSystemAlert, 503).Encode()
	require.NoError(t, err)

	msg, err := DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, rest.TopicSystemAlert, msg.Topic)
	assert.Equal(t, float64(503), msg.Payload)

	_, err = DecodeMessage([]byte("{"))
	assert.Error(t, err)

	_, err = NewMessage("t", func() {}).Encode()
	assert.Error(t, err)
}
