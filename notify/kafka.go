package notify

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/kbukum/restkit/rest"
)

// KafkaConfig configures the Kafka backend.
type KafkaConfig struct {
	// Brokers are host:port seed addresses.
	Brokers []string `yaml:"brokers" mapstructure:"brokers"`
	// TopicPrefix is prepended to the notification topic to form the Kafka topic.
	TopicPrefix string `yaml:"topic_prefix" mapstructure:"topic_prefix"`
	// BatchTimeout bounds how long a message waits for a batch. Defaults to 10ms.
	BatchTimeout time.Duration `yaml:"batch_timeout" mapstructure:"batch_timeout"`
	// RequiredAcks is -1 (all replicas) or 1 (leader, the default).
	RequiredAcks int `yaml:"required_acks" mapstructure:"required_acks" validate:"gte=-1,lte=1"`
	// AutoCreateTopics lets the writer create missing topics.
	AutoCreateTopics bool `yaml:"auto_create_topics" mapstructure:"auto_create_topics"`
}

func (c *KafkaConfig) applyDefaults() {
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = 10 * time.Millisecond
	}
	if c.RequiredAcks == 0 {
		c.RequiredAcks = 1
	}
}

// MessageWriter is the part of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher writes one message per notification, keyed by topic.
type KafkaPublisher struct {
	writer MessageWriter
	prefix string
}

var _ rest.Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher with a kafka-go Writer.
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	cfg.applyDefaults()
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("notify: kafka brokers are required")
	}
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafkago.RequiredAcks(cfg.RequiredAcks),
		AllowAutoTopicCreation: cfg.AutoCreateTopics,
	}
	return NewKafkaPublisherWithWriter(w, cfg.TopicPrefix), nil
}

// NewKafkaPublisherWithWriter publishes through w. The writer must not have
// a fixed Topic.
func NewKafkaPublisherWithWriter(w MessageWriter, prefix string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, prefix: prefix}
}

// Publish implements rest.Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, payload any) error {
	msg := NewMessage(topic, payload)
	data, err := msg.Encode()
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: p.prefix + topic,
		Key:   []byte(topic),
		Value: data,
		Time:  msg.PublishedAt,
		Headers: []kafkago.Header{
			{Key: "message-id", Value: []byte(msg.ID)},
		},
	})
	if err != nil {
		return fmt.Errorf("notify: kafka publish %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
