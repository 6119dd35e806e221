package notify

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/rest"
)

const subscriptionBuffer = 64

// MemoryBus is an in-process publisher. Publish never blocks: a message for a
// subscriber whose buffer is full is dropped and logged.
type MemoryBus struct {
	mu      sync.RWMutex
	subs    map[string][]chan Message
	log     *logger.Logger
	dropped atomic.Uint64
}

var _ rest.Publisher = (*MemoryBus)(nil)

// BusOption configures a MemoryBus.
type BusOption func(*MemoryBus)

// WithBusLogger sets the logger that reports dropped messages.
func WithBusLogger(l *logger.Logger) BusOption {
	return func(b *MemoryBus) {
		if l != nil {
			b.log = l
		}
	}
}

// NewMemoryBus creates an empty bus.
func NewMemoryBus(opts ...BusOption) *MemoryBus {
	b := &MemoryBus{
		subs: make(map[string][]chan Message),
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish implements rest.Publisher. It fails only when ctx is already done.
func (b *MemoryBus) Publish(ctx context.Context, topic string, payload any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notify: publish %q: %w", topic, err)
	}
	msg := NewMessage(topic, payload)

	// Sends happen under the read lock so Close cannot close a channel
	// mid-send.
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- msg:
		default:
			b.dropped.Add(1)
			b.log.Warn("subscriber buffer full, message dropped", logger.Fields(
				logger.FieldTopic, topic,
				"message_id", msg.ID,
			))
		}
	}
	return nil
}

// Dropped returns how many deliveries were dropped on full buffers.
func (b *MemoryBus) Dropped() uint64 {
	return b.dropped.Load()
}

// Subscribe registers a buffered subscription to topic.
func (b *MemoryBus) Subscribe(topic string) *Subscription {
	ch := make(chan Message, subscriptionBuffer)
	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], ch)
	b.mu.Unlock()
	return &Subscription{bus: b, topic: topic, ch: ch}
}

// Subscription receives the messages of one topic.
type Subscription struct {
	bus   *MemoryBus
	topic string
	ch    chan Message
	once  sync.Once
}

// C returns the delivery channel. It is closed by Close.
func (s *Subscription) C() <-chan Message {
	return s.ch
}

// Close unsubscribes. It is safe to call more than once and concurrently
// with Publish.
func (s *Subscription) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		list := s.bus.subs[s.topic]
		kept := make([]chan Message, 0, len(list))
		for _, c := range list {
			if c != s.ch {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			delete(s.bus.subs, s.topic)
		} else {
			s.bus.subs[s.topic] = kept
		}
		close(s.ch)
	})
	return nil
}
