package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dayflow-hrms/internal/events"
	"dayflow-hrms/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []notification.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg notification.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestNotifier_EmployeeCreated(t *testing.T) {
	mailer := &recordingMailer{}
	n := notification.NewNotifier(mailer, "Dayflow", "https://hr.dayflow.io")

	payload, _ := json.Marshal(events.EmployeeCreatedEvent{
		EventType:    events.EmployeeCreated,
		EmployeeID:   "e1",
		EmployeeCode: "EMP-000001",
		LoginID:      "DAJODO20260001",
		FullName:     "John Doe",
		Email:        "john@dayflow.io",
		Department:   "Finance",
		Designation:  "Analyst",
	})

	require.NoError(t, n.Handle(context.Background(), events.EmployeeCreated, payload))
	require.Len(t, mailer.sent, 1)

	msg := mailer.sent[0]
	assert.Equal(t, "john@dayflow.io", msg.To)
	assert.Equal(t, "Welcome to Dayflow", msg.Subject)
	assert.Contains(t, msg.Body, "DAJODO20260001")
	assert.Contains(t, msg.Body, "https://hr.dayflow.io")
	assert.NotContains(t, msg.Body, "password:")
}

func TestNotifier_LeaveReviewed(t *testing.T) {
	t.Run("approved with comments", func(t *testing.T) {
		mailer := &recordingMailer{}
		n := notification.NewNotifier(mailer, "Dayflow", "")

		err := n.LeaveReviewed(context.Background(), events.LeaveReviewedEvent{
			LeaveID:       "l1",
			EmployeeName:  "Jane Doe",
			EmployeeEmail: "jane@dayflow.io",
			LeaveType:     "sick",
			StartDate:     "2026-11-02",
			EndDate:       "2026-11-02",
			TotalDays:     1,
			Status:        "approved",
			Comments:      "get well",
		})

		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "Leave request approved", mailer.sent[0].Subject)
		assert.Contains(t, mailer.sent[0].Body, "(1 day)")
		assert.Contains(t, mailer.sent[0].Body, "Reviewer comments: get well")
	})

	t.Run("no recipient is skipped", func(t *testing.T) {
		mailer := &recordingMailer{}
		n := notification.NewNotifier(mailer, "Dayflow", "")

		require.NoError(t, n.LeaveReviewed(context.Background(), events.LeaveReviewedEvent{LeaveID: "l2", Status: "rejected"}))
		assert.Empty(t, mailer.sent)
	})

	t.Run("send failure is returned", func(t *testing.T) {
		n := notification.NewNotifier(&recordingMailer{err: errors.New("smtp down")}, "Dayflow", "")

		err := n.LeaveReviewed(context.Background(), events.LeaveReviewedEvent{EmployeeEmail: "x@y.z", Status: "rejected", TotalDays: 3})

		assert.EqualError(t, err, "smtp down")
	})
}

func TestNotifier_Handle_Errors(t *testing.T) {
	n := notification.NewNotifier(&recordingMailer{}, "Dayflow", "")

	err := n.Handle(context.Background(), "payroll.updated", []byte(`{}`))
	assert.ErrorIs(t, err, notification.ErrUnknownEvent)

	var syntaxErr *json.SyntaxError
	err = n.Handle(context.Background(), events.LeaveReviewed, []byte(`{not json`))
	assert.ErrorAs(t, err, &syntaxErr)
}
