// Package kafka publishes committed parcel lifecycle events to a Kafka topic.
// Messages are keyed by parcel id and hashed onto partitions, so consumers
// see each parcel's events in commit order.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

// envelope is the wire format of one published event.
type envelope struct {
	Event       string    `json:"event"`
	ParcelID    string    `json:"parcel_id"`
	PublishedAt time.Time `json:"published_at"`
	Payload     any       `json:"payload"`
}

// Publisher implements ports.EventPublisher on a kafka-go writer.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher creates a publisher writing to the given topic. brokersCSV is
// a comma-separated broker list.
func NewPublisher(brokersCSV, topic string, logger *slog.Logger) *Publisher {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &Publisher{
		writer: writer,
		logger: logger.With("component", "kafka-publisher"),
	}
}

// Publish sends one event, keyed by parcel id.
func (p *Publisher) Publish(ctx context.Context, eventName string, parcelID kernel.UUID, payload any) error {
	data, err := json.Marshal(envelope{
		Event:       eventName,
		ParcelID:    parcelID.String(),
		PublishedAt: time.Now().UTC(),
		Payload:     payload,
	})
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(parcelID.String()),
		Value: data,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		p.logger.Error("failed to publish event",
			"event", eventName, "parcel_id", parcelID.String(), "error", err)
		return err
	}

	p.logger.Debug("event published", "event", eventName, "parcel_id", parcelID.String())
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
