package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dayflow-hrms/internal/config"
	"dayflow-hrms/internal/messaging/kafka"
	"dayflow-hrms/internal/messaging/kafka/producer"
	"dayflow-hrms/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays the outbox to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if err := cfg.ValidateBroker(); err != nil {
		return err
	}

	infra, err := connectInfra(cfg, false)
	if err != nil {
		return err
	}
	defer infra.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(infra.GormDB),
		kafkaWriter,
		logger,
		cfg.OutboxPollInterval,
	)

	log.Info("worker shut down")
	return nil
}
