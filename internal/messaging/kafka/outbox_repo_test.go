package kafka

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) (*outboxRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &outboxRepository{db: gormDB, now: func() time.Time { return fixed }}, mock
}

func TestNewOutboxEvent(t *testing.T) {
	aggregateID := uuid.NewString()

	event, err := NewOutboxEvent("leave", aggregateID, "leave.reviewed", "hrms.leave.reviewed", "req-1", map[string]string{"status": "approved"})

	require.NoError(t, err)
	assert.Equal(t, OutboxStatusPending, event.Status)
	assert.Equal(t, aggregateID, event.AggregateID)
	assert.JSONEq(t, `{"status":"approved"}`, string(event.Payload))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := OutboxEvent{ID: "1", AggregateID: "2", Topic: "t", Payload: []byte("{}"), Status: OutboxStatusPending}

	tests := []struct {
		name    string
		mutate  func(*OutboxEvent)
		wantErr string
	}{
		{"ok", func(*OutboxEvent) {}, ""},
		{"missing id", func(e *OutboxEvent) { e.ID = "" }, "id is required"},
		{"missing topic", func(e *OutboxEvent) { e.Topic = "" }, "topic is required"},
		{"empty payload", func(e *OutboxEvent) { e.Payload = nil }, "payload is required"},
		{"bad status", func(e *OutboxEvent) { e.Status = "queued" }, "invalid status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := ValidateOutboxEvent(e)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOutboxRepository_Create_RejectsInvalidAggregateID(t *testing.T) {
	repo, mock := newTestRepo(t)

	err := repo.Create(context.Background(), OutboxEvent{
		ID: uuid.NewString(), AggregateID: "not-a-uuid", Topic: "t", Payload: []byte("{}"), Status: OutboxStatusPending,
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	repo, mock := newTestRepo(t)
	id, aggregateID := uuid.New(), uuid.New()
	created := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "outbox_events" WHERE status IN`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic",
			"payload", "status", "retry_count", "next_retry_at", "created_at",
		}).AddRow(id.String(), "req-9", "employee", aggregateID.String(), "employee.created", "hrms.employee.created",
			[]byte(`{}`), OutboxStatusPending, 0, nil, created))

	events, err := repo.ListPending(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id.String(), events[0].ID)
	assert.Equal(t, aggregateID.String(), events[0].AggregateID)
	assert.Equal(t, created, events[0].NextRetryAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`UPDATE "outbox_events" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSent(context.Background(), uuid.NewString()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed_TruncatesReason(t *testing.T) {
	repo, mock := newTestRepo(t)
	reason := strings.Repeat("x", maxErrorLen+50)

	mock.ExpectExec(`UPDATE "outbox_events" SET`).
		WithArgs(strings.Repeat("x", maxErrorLen), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			OutboxStatusFailed, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkFailed(context.Background(), uuid.NewString(), reason))
	assert.NoError(t, mock.ExpectationsWereMet())
}
