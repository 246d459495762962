package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dayflow-hrms/internal/events"

	"go.uber.org/zap"
)

// Notifier turns domain events into emails. A failed send is returned to the
// caller, which decides whether to retry. It never reaches the write path.
type Notifier struct {
	mailer      Mailer
	company     string
	frontendURL string
	logger      *zap.Logger
}

func NewNotifier(mailer Mailer, company, frontendURL string, logger ...*zap.Logger) *Notifier {
	l := zap.L().Named("notification.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.notifier")
	}
	return &Notifier{mailer: mailer, company: company, frontendURL: frontendURL, logger: l}
}

// ErrUnknownEvent marks payloads that no handler understands.
var ErrUnknownEvent = errors.New("unknown event type")

// Handle dispatches on eventType. Payloads that cannot be decoded are returned
// as errors wrapping json errors so the caller can skip them.
func (n *Notifier) Handle(ctx context.Context, eventType string, payload []byte) error {
	switch eventType {
	case events.EmployeeCreated:
		var e events.EmployeeCreatedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return fmt.Errorf("decode %s: %w", eventType, err)
		}
		return n.EmployeeCreated(ctx, e)
	case events.LeaveReviewed:
		var e events.LeaveReviewedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return fmt.Errorf("decode %s: %w", eventType, err)
		}
		return n.LeaveReviewed(ctx, e)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, eventType)
	}
}

func (n *Notifier) EmployeeCreated(ctx context.Context, e events.EmployeeCreatedEvent) error {
	msg, err := renderWelcome(e, n.company, n.frontendURL)
	if err != nil {
		return err
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return err
	}
	n.logger.Info("welcome email sent",
		zap.String("employee_id", e.EmployeeID),
		zap.String("request_id", e.RequestID),
	)
	return nil
}

func (n *Notifier) LeaveReviewed(ctx context.Context, e events.LeaveReviewedEvent) error {
	if e.EmployeeEmail == "" {
		n.logger.Warn("leave review event without recipient", zap.String("leave_id", e.LeaveID))
		return nil
	}
	msg, err := renderLeaveReview(e)
	if err != nil {
		return err
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return err
	}
	n.logger.Info("leave review email sent",
		zap.String("leave_id", e.LeaveID),
		zap.String("status", e.Status),
	)
	return nil
}
