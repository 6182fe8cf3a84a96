package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuti-management/backend/internal/config"
	"github.com/cuti-management/backend/internal/messaging/kafka"
	"github.com/cuti-management/backend/internal/messaging/kafka/producer"
	"github.com/cuti-management/backend/internal/shared/connection"

	"go.uber.org/zap"
)

var ErrKafkaBrokerRequired = errors.New("KAFKA_BROKER is required")

// RunWorker relays outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return ErrKafkaBrokerRequired
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.DB.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.Kafka.PollInterval)

	log.Info("worker shutting down")
	return nil
}
