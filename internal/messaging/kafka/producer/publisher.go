package producer

import (
	"context"

	"inthehaus-hr/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is satisfied by *kafkago.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// toMessage keys by aggregate id so every event of one swap or payroll
// record lands on the same partition.
func toMessage(event kafka.OutboxEvent) kafkago.Message {
	headers := make([]kafkago.Header, 0, 5)
	add := func(k, v string) {
		if v != "" {
			headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
	}
	add("event_type", event.EventType)
	add("aggregate_type", event.AggregateType)
	add("outbox_id", event.ID)
	add("request_id", event.RequestID)
	add("content_type", "application/json")

	return kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}
}
