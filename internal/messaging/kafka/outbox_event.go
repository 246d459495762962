package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// OutboxEvent is a message waiting to be relayed to Kafka. Services write it
// in the same transaction as the state change it describes.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewOutboxEvent marshals payload into a pending event for the given aggregate.
func NewOutboxEvent(aggregateType, aggregateID, eventType, topic, requestID string, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	event := OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}
	return event, ValidateOutboxEvent(event)
}

var (
	errOutboxID        = errors.New("outbox: id is required")
	errOutboxAggregate = errors.New("outbox: aggregate id is required")
	errOutboxTopic     = errors.New("outbox: topic is required")
	errOutboxPayload   = errors.New("outbox: payload is required")
)

func ValidateOutboxEvent(event OutboxEvent) error {
	switch {
	case event.ID == "":
		return errOutboxID
	case event.AggregateID == "":
		return errOutboxAggregate
	case event.Topic == "":
		return errOutboxTopic
	case len(event.Payload) == 0:
		return errOutboxPayload
	}
	if event.Status != OutboxStatusPending && event.Status != OutboxStatusSent && event.Status != OutboxStatusFailed {
		return fmt.Errorf("outbox: invalid status %q", event.Status)
	}
	return nil
}
