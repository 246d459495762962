package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"dayflow-hrms/internal/messaging/kafka"
	"dayflow-hrms/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type EventHandler interface {
	Handle(ctx context.Context, eventType string, payload []byte) error
}

// ConsumeNotifications reads employee lifecycle and leave review events and
// hands them to handler until ctx is cancelled. Undecodable or unknown
// messages are committed and skipped. A handler failure leaves the message
// uncommitted.
func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	handler EventHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notifications")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, reader, handler, msg, log)
	}
}

func handleMessage(ctx context.Context, reader MessageReader, handler EventHandler, msg kafkago.Message, log *zap.Logger) {
	eventType := eventTypeOf(msg)
	log = log.With(
		zap.String("topic", msg.Topic),
		zap.Int64("offset", msg.Offset),
		zap.String("event_type", eventType),
		zap.String("request_id", headerValue(msg, kafka.HeaderRequestID)),
	)

	err := handler.Handle(ctx, eventType, msg.Value)

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
	case errors.Is(err, notification.ErrUnknownEvent), errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		log.Warn("skipping notification message", zap.Error(err))
	default:
		log.Error("handle notification message failed", zap.Error(err))
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit notification message failed", zap.Error(err))
	}
}

// eventTypeOf prefers the header and falls back to the payload's event_type.
func eventTypeOf(msg kafkago.Message) string {
	if v := headerValue(msg, kafka.HeaderEventType); v != "" {
		return v
	}
	var probe struct {
		EventType string `json:"event_type"`
	}
	_ = json.Unmarshal(msg.Value, &probe)
	return probe.EventType
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
