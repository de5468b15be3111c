// Package kafka publishes order change notifications to the storefront's
// event bus. The marketplace front end and the notification service consume
// these to refresh buyer views without polling.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"terabia/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// OrderChangedEvent is the wire shape of one order notification.
type OrderChangedEvent struct {
	OrderID       int64     `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	AgencyID      *string   `json:"agency_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// OrderChangedProducer writes order change events to a single topic, keyed by
// order id so consumers see each order's changes in order.
type OrderChangedProducer struct {
	writer *kafka.Writer
}

// NewOrderChangedProducer creates a producer for the given brokers and topic.
func NewOrderChangedProducer(brokers []string, topic string) *OrderChangedProducer {
	return &OrderChangedProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// PublishOrderChanged emits the order's current state.
func (p *OrderChangedProducer) PublishOrderChanged(ctx context.Context, aggregate *order.Order) error {
	event := OrderChangedEvent{
		OrderID:       aggregate.ID(),
		OrderNumber:   aggregate.OrderNumber(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		OccurredAt:    time.Now().UTC(),
	}
	if agency := aggregate.Agency(); agency != nil {
		s := agency.String()
		event.AgencyID = &s
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(aggregate.ID(), 10)),
		Value: payload,
	})
}

// Close flushes and closes the underlying writer.
func (p *OrderChangedProducer) Close() error {
	return p.writer.Close()
}

// NoOpPublisher is used when no broker is configured, typically in local
// development. Publishing succeeds without doing anything.
type NoOpPublisher struct{}

// NewNoOpPublisher creates a publisher that drops every event.
func NewNoOpPublisher() NoOpPublisher {
	return NoOpPublisher{}
}

// PublishOrderChanged drops the event.
func (NoOpPublisher) PublishOrderChanged(context.Context, *order.Order) error {
	return nil
}
