package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dayflow-hrms/internal/config"
	"dayflow-hrms/internal/events"
	"dayflow-hrms/internal/messaging/kafka/consumer"
	"dayflow-hrms/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationGroupID = "dayflow-notifications"

// RunConsumer sends notification emails for lifecycle and leave review events
// until SIGINT or SIGTERM. It needs no database.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if err := cfg.ValidateBroker(); err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		GroupID:        notificationGroupID,
		GroupTopics:    []string{events.EmployeeLifecycleTopic, events.LeaveReviewTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	notifier := notification.NewNotifier(
		notification.NewMailer(cfg, logger),
		cfg.CompanyName,
		cfg.FrontendURL,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeNotifications(ctx, reader, notifier, logger)

	log.Info("consumer shut down")
	return nil
}
