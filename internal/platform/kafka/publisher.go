// Package kafka publishes domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/souqhq/souq-api/internal/events"
)

// Publisher forwards emitted domain events to a Kafka topic. It implements
// events.Handler, so it plugs into the in-process emitter fanout.
type Publisher struct {
	writer *kafka.Writer
	topic  string
	logger *slog.Logger
}

var _ events.Handler = (*Publisher)(nil)

// NewPublisher creates a Publisher writing to the given brokers and topic.
func NewPublisher(brokers []string, topic string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
		logger: log.With(slog.String("component", "kafka_publisher")),
	}
}

// HandleEvent implements events.Handler. The event type is the message key
// so consumers can partition by lifecycle stage.
func (p *Publisher) HandleEvent(ctx context.Context, event *events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Type),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	p.logger.Debug("event published",
		slog.String("topic", p.topic),
		slog.String("event_type", event.Type),
		slog.String("event_id", event.ID.String()))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
