// Package kafka publishes rotation events to a Kafka topic for downstream
// consumers such as analytics and the provider mobile app backend.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"buildconnect/internal/core/ports"

	"github.com/IBM/sarama"
)

var _ ports.EventPublisher = &RotationEventPublisher{}

// RotationEventPublisher sends rotation events through a synchronous Kafka
// producer. Events are keyed by request ID so all events of one request land
// on the same partition in order.
type RotationEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewRotationEventPublisher connects a synchronous producer to the given
// brokers and topic.
func NewRotationEventPublisher(brokers []string, topic string, logger *slog.Logger) (*RotationEventPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("connect kafka producer: %w", err)
	}

	return &RotationEventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}, nil
}

// Publish sends a rotation event to the topic, keyed by request ID.
func (p *RotationEventPublisher) Publish(_ context.Context, event ports.RotationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal rotation event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.RequestID.String()),
		Value: sarama.ByteEncoder(value),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send rotation event: %w", err)
	}

	p.logger.Debug("rotation event published",
		"event_type", event.EventType,
		"request_id", event.RequestID.String(),
		"partition", partition,
		"offset", offset)

	return nil
}

// Close shuts down the underlying producer.
func (p *RotationEventPublisher) Close() error {
	return p.producer.Close()
}
