package notification

import (
	"context"
	"strings"
	"testing"

	"dayflow-hrms/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewMailer(t *testing.T) {
	_, ok := NewMailer(config.Config{EmailEnabled: false, SMTPHost: "smtp.example"}, zap.NewNop()).(noopMailer)
	assert.True(t, ok)

	_, ok = NewMailer(config.Config{EmailEnabled: true}, zap.NewNop()).(noopMailer)
	assert.True(t, ok)

	m, ok := NewMailer(config.Config{EmailEnabled: true, SMTPHost: "smtp.example", SMTPPort: 587, EmailFrom: "hr@dayflow.io"}, zap.NewNop()).(*smtpMailer)
	if assert.True(t, ok) {
		assert.Equal(t, "hr@dayflow.io", m.from)
	}
}

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("hr@dayflow.io", Message{To: "a@b.io", Subject: "Hi", Body: "line1\r\nline2"}))

	head, body, found := strings.Cut(raw, "\r\n\r\n")
	assert.True(t, found)
	assert.Contains(t, head, "From: hr@dayflow.io")
	assert.Contains(t, head, "To: a@b.io")
	assert.Contains(t, head, "Subject: Hi")
	assert.Equal(t, "line1\r\nline2", body)
}

func TestSMTPMailer_EmptyRecipient(t *testing.T) {
	m := &smtpMailer{host: "127.0.0.1", port: 1}
	assert.NoError(t, m.Send(context.Background(), Message{}))
}
