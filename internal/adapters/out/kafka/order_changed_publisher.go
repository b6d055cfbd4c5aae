// Package kafka publishes order-changed events with segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedEvent is the JSON value of every message on the order-changed topic.
type OrderChangedEvent struct {
	OrderID     string    `json:"orderId"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"totalAmount"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// OrderChangedPublisher implements ports.OrderChangedPublisher.
// Messages are keyed by order id so that one order's events stay in one partition.
type OrderChangedPublisher struct {
	writer MessageWriter
}

// NewOrderChangedPublisher creates a publisher writing to topic on the
// comma-separated list of brokers.
func NewOrderChangedPublisher(brokersCSV, topic string) *OrderChangedPublisher {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return NewOrderChangedPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	})
}

func NewOrderChangedPublisherWithWriter(writer MessageWriter) *OrderChangedPublisher {
	return &OrderChangedPublisher{writer: writer}
}

func (p *OrderChangedPublisher) PublishOrderChanged(ctx context.Context, aggregate *order.Order) error {
	msg, err := NewOrderChangedMessage(aggregate)
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order changed message for %s: %w", aggregate.ID(), err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}

// NewOrderChangedMessage builds the message for the current state of an order.
// OccurredAt is the time of the latest transition, or the order date for a new order.
func NewOrderChangedMessage(aggregate *order.Order) (kafka.Message, error) {
	if err := aggregate.Validate(); err != nil {
		return kafka.Message{}, err
	}

	occurredAt := aggregate.OrderDate()
	switch {
	case aggregate.Cancellation() != nil:
		occurredAt = aggregate.Cancellation().At
	case aggregate.Confirmation() != nil:
		occurredAt = aggregate.Confirmation().At
	}

	value, err := json.Marshal(OrderChangedEvent{
		OrderID:     aggregate.ID().String(),
		Status:      aggregate.Status().String(),
		TotalAmount: aggregate.TotalAmount().String(),
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(aggregate.ID().String()),
		Value: value,
		Time:  occurredAt,
	}, nil
}
