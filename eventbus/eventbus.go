package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
)

// Topic names a base topic and its dead letter companion.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ returns the dead letter topic name (e.g. blog.post.events.dlq).
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

// Event is the envelope written as the Kafka message value.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	// LastError is set on events written to the dead letter topic.
	LastError string `json:"last_error,omitempty"`
}

// EventBus publishes events. Implementations must be safe for concurrent use.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// EventHandler processes one consumed event. A returned error sends the
// event to the dead letter topic.
type EventHandler func(ctx context.Context, event Event) error

// NewJSONEvent encodes payload as the event body.
func NewJSONEvent(id, eventType string, payload any) (Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal event payload: %w", err)
	}
	return Event{ID: id, Type: eventType, Payload: b}, nil
}

// DecodeJSON unmarshals Event.Payload into T.
func DecodeJSON[T any](evt Event) (T, error) {
	var out T
	if err := json.Unmarshal(evt.Payload, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("unmarshal event payload: %w", err)
	}
	return out, nil
}

// NoopEventBus drops every event. It is used when Kafka is disabled.
type NoopEventBus struct{}

func (NoopEventBus) Publish(context.Context, string, Event) error { return nil }
func (NoopEventBus) Close()                                       {}
