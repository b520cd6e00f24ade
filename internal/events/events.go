// Package events publishes fact lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"yorkfacts/internal/models"
)

// Event types.
const (
	TypeFactSubmitted = "fact.submitted"
	TypeFactDeleted   = "fact.deleted"
)

// Event describes a change to the fact store.
type Event struct {
	Type       string    `json:"type"`
	FactID     string    `json:"fact_id,omitempty"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer,omitempty"`
	Location   string    `json:"location,omitempty"`
	Category   string    `json:"category,omitempty"`
	Removed    int       `json:"removed,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Submitted builds the event for a stored fact.
func Submitted(f *models.Fact) Event {
	return Event{
		Type:       TypeFactSubmitted,
		FactID:     f.ID.String(),
		Question:   f.Question,
		Answer:     f.Answer,
		Location:   f.Location,
		Category:   f.Category,
		OccurredAt: time.Now().UTC(),
	}
}

// Deleted builds the event for a delete-by-question.
func Deleted(question string, removed int) Event {
	return Event{
		Type:       TypeFactDeleted,
		Question:   question,
		Removed:    removed,
		OccurredAt: time.Now().UTC(),
	}
}

// Key is the partitioning key: the fact id, or the question when there is none.
func (e Event) Key() string {
	if e.FactID != "" {
		return e.FactID
	}
	return e.Question
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, Event) error { return nil }

// Close does nothing.
func (Nop) Close() error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON to a Kafka topic.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a publisher for topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: writer}
}

// Publish serializes the event and writes it to Kafka.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
