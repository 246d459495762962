package config_test

import (
	"testing"
	"time"

	"dayflow-hrms/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "dayflow")

	cfg := config.Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "INR", cfg.DefaultCurrency)
	assert.Equal(t, "Dayflow", cfg.CompanyName)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "dayflow")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("SMTP_HOST", "smtp.example")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")

	cfg := config.Load()

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.True(t, cfg.EmailEnabled)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() config.Config {
		cfg := config.Load()
		cfg.Postgres.Host = "db"
		cfg.Postgres.Name = "dayflow"
		return cfg
	}

	t.Run("missing db host", func(t *testing.T) {
		cfg := base()
		cfg.Postgres.Host = ""
		assert.EqualError(t, cfg.Validate(), "DB_HOST is required")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.Environment = "production"
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("email without smtp host", func(t *testing.T) {
		cfg := base()
		cfg.EmailEnabled = true
		cfg.SMTPHost = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("broker required for async processes", func(t *testing.T) {
		cfg := base()
		cfg.KafkaBroker = ""
		assert.Error(t, cfg.ValidateBroker())
	})
}
