package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"blog-server/logger"
)

// KafkaEventBus publishes events with confluent-kafka-go.
type KafkaEventBus struct {
	Producer *kafka.Producer
	Brokers  string
}

// NewKafkaEventBus initializes the producer.
func NewKafkaEventBus(brokers string) (*KafkaEventBus, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	// delivery reports for messages produced without a delivery channel
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Log.Errorf("kafka delivery failed %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				logger.Log.Errorf("kafka error: %v", ev)
			}
		}
	}()

	return &KafkaEventBus{
		Producer: p,
		Brokers:  brokers,
	}, nil
}

// Close flushes outstanding messages for up to five seconds and closes the producer.
func (k *KafkaEventBus) Close() {
	if k.Producer != nil {
		if remaining := k.Producer.Flush(5000); remaining > 0 {
			logger.Log.Warnf("%d kafka messages still queued after flush", remaining)
		}
		k.Producer.Close()
		logger.Log.Info("kafka producer closed")
	}
}

// Publish produces event to topic and waits for the delivery report.
func (k *KafkaEventBus) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)

	err = k.Producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(event.ID),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("produce message: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event %v", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("deliver message: %w", m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

// Subscribe consumes topic.Base() as groupID until ctx is cancelled. Offsets
// are committed manually after handler returns. A failing handler is retried
// up to MaxHandleAttempts times unless the error is Permanent; events it still
// rejects go to topic.DLQ(). If that publish fails the consumer seeks back and
// the event is read again.
func (k *KafkaEventBus) Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":             k.Brokers,
		"group.id":                      groupID,
		"auto.offset.reset":             "earliest",
		"enable.auto.commit":            false,
		"partition.assignment.strategy": "range",
	})
	if err != nil {
		return fmt.Errorf("create kafka consumer: %w", err)
	}
	defer c.Close()

	if err := c.SubscribeTopics([]string{topic.Base()}, nil); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic.Base(), err)
	}
	logger.Log.Infof("consumer %s subscribed to %s", groupID, topic.Base())

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("consumer stopping")
			return ctx.Err()
		default:
		}

		msg, err := c.ReadMessage(100 * time.Millisecond)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) {
				if kerr.Code() == kafka.ErrTimedOut {
					continue
				}
				if kerr.IsFatal() {
					return fmt.Errorf("kafka consumer fatal error: %w", err)
				}
			}
			logger.Log.Errorf("read message: %v", err)
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Log.Errorf("undecodable message on %s, skipping: %v", *msg.TopicPartition.Topic, err)
			k.commit(c, msg)
			continue
		}

		if err := handleWithRetry(ctx, handler, evt, MaxHandleAttempts, RetryDelay); err != nil {
			evt.LastError = err.Error()
			logger.Log.Errorf("event %s failed, sending to %s: %v", evt.ID, topic.DLQ(), err)
			if err := k.Publish(ctx, topic.DLQ(), evt); err != nil {
				logger.Log.Errorf("publish to %s failed, rereading event: %v", topic.DLQ(), err)
				if err := c.Seek(msg.TopicPartition, 0); err != nil {
					logger.Log.Errorf("seek back to %v: %v", msg.TopicPartition, err)
				}
				continue
			}
		}
		k.commit(c, msg)
	}
}

func (k *KafkaEventBus) commit(c *kafka.Consumer, msg *kafka.Message) {
	if _, err := c.CommitMessage(msg); err != nil {
		logger.Log.Errorf("commit offset: %v", err)
	}
}
