package kafka

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dayflow-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// failed rows past this count are left for manual inspection
	maxOutboxRetries = 20

	retryStep     = 15 * time.Second
	maxRetrySteps = 10
	maxErrorLen   = 500
)

// OutboxRecord is the outbox_events row.
type OutboxRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID     string    `gorm:"type:varchar(64)"`
	AggregateType string    `gorm:"type:varchar(50);not null"`
	AggregateID   uuid.UUID `gorm:"type:uuid;not null"`
	EventType     string    `gorm:"type:varchar(100);not null"`
	Topic         string    `gorm:"type:varchar(150);not null"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:pending;index:idx_outbox_status_created,priority:1"`
	RetryCount    int       `gorm:"not null;default:0"`
	ErrorMessage  *string   `gorm:"type:text"`
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"index:idx_outbox_status_created,priority:2"`
	UpdatedAt     time.Time
}

func (OutboxRecord) TableName() string {
	return "outbox_events"
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db, now: time.Now}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: connection.BindTx(r.db, tx), now: r.now}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	id, err := uuid.Parse(event.ID)
	if err != nil {
		return fmt.Errorf("outbox: id: %w", err)
	}
	aggregateID, err := uuid.Parse(event.AggregateID)
	if err != nil {
		return fmt.Errorf("outbox: aggregate id: %w", err)
	}

	return r.db.WithContext(ctx).Create(&OutboxRecord{
		ID:            id,
		RequestID:     event.RequestID,
		AggregateType: event.AggregateType,
		AggregateID:   aggregateID,
		EventType:     event.EventType,
		Topic:         event.Topic,
		Payload:       event.Payload,
		Status:        event.Status,
	}).Error
}

// ListPending returns due pending and failed rows, oldest first.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var rows []OutboxRecord
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{OutboxStatusPending, OutboxStatusFailed}).
		Where("retry_count < ?", maxOutboxRetries).
		Where("next_retry_at IS NULL OR next_retry_at <= ?", r.now().UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	events := make([]OutboxEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, toEvent(row))
	}
	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	now := r.now().UTC()
	return r.db.WithContext(ctx).
		Model(&OutboxRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        OutboxStatusSent,
			"processed_at":  now,
			"error_message": nil,
			"updated_at":    now,
		}).Error
}

// MarkFailed bumps the retry count and pushes next_retry_at back by
// retryStep per attempt, capped at maxRetrySteps steps.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > maxErrorLen {
		reason = reason[:maxErrorLen]
	}
	now := r.now().UTC()

	return r.db.WithContext(ctx).
		Model(&OutboxRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        OutboxStatusFailed,
			"retry_count":   gorm.Expr("retry_count + 1"),
			"error_message": reason,
			"next_retry_at": gorm.Expr("? + LEAST(retry_count + 1, ?) * ?::interval", now, maxRetrySteps, fmt.Sprintf("%d seconds", int(retryStep.Seconds()))),
			"updated_at":    now,
		}).Error
}

func toEvent(row OutboxRecord) OutboxEvent {
	e := OutboxEvent{
		ID:            row.ID.String(),
		RequestID:     row.RequestID,
		AggregateType: row.AggregateType,
		AggregateID:   row.AggregateID.String(),
		EventType:     row.EventType,
		Topic:         row.Topic,
		Payload:       row.Payload,
		Status:        row.Status,
		RetryCount:    row.RetryCount,
		NextRetryAt:   row.CreatedAt,
	}
	if row.NextRetryAt != nil {
		e.NextRetryAt = *row.NextRetryAt
	}
	return e
}
