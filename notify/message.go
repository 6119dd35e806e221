package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message is the envelope written to external brokers.
type Message struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	Payload     any       `json:"payload"`
	PublishedAt time.Time `json:"published_at"`
}

// NewMessage wraps payload for topic with a fresh id and timestamp.
func NewMessage(topic string, payload any) Message {
	return Message{
		ID:          uuid.NewString(),
		Topic:       topic,
		Payload:     payload,
		PublishedAt: time.Now().UTC(),
	}
}

// Encode returns the JSON form of m.
func (m Message) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("notify: encode %s: %w", m.Topic, err)
	}
	return data, nil
}

// DecodeMessage parses an envelope written by Encode. Payload comes back as
// the generic JSON form (string, float64, map...).
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("notify: decode message: %w", err)
	}
	return m, nil
}
