// Package events publishes domain events about orders and reservations.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/mataam/internal/logging"
	"github.com/example/mataam/internal/metrics"
)

const (
	TypeOrderPlaced              = "order.placed"
	TypeOrderStatusChanged       = "order.status_changed"
	TypeReservationCreated       = "reservation.created"
	TypeReservationStatusChanged = "reservation.status_changed"
)

// Event is the message envelope. Key groups events of one aggregate, e.g. an
// order number, onto the same partition.
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// New stamps an event with the current time.
func New(eventType, key string, data any) Event {
	return Event{Type: eventType, Key: key, OccurredAt: time.Now().UTC(), Data: data}
}

// Publisher hands events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MessageWriter is the part of *kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublishTimeout bounds a single Publish so an unreachable broker cannot
// hold up the request that emitted the event.
const PublishTimeout = 5 * time.Second

// KafkaPublisher writes events as JSON kafka messages.
type KafkaPublisher struct {
	Writer  MessageWriter
	Timeout time.Duration
}

// NewKafkaWriter builds a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           PublishTimeout,
		MaxAttempts:            3,
	}
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer, Timeout: PublishTimeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	metrics.RecordEventPublished(event.Type, err == nil)
	return err
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(_ context.Context, event Event) error {
	logging.For("events").WithField("type", event.Type).Debug("no broker configured, event dropped")
	return nil
}
