package main

import (
	"context"
	"time"

	config "github.com/NordCoder/Foodcart/internal/config/storefront-api"
	"github.com/NordCoder/Foodcart/internal/obs/retry"
	"github.com/NordCoder/Foodcart/internal/outbox"
	"github.com/NordCoder/Foodcart/internal/repository/kafka"
	pg "github.com/NordCoder/Foodcart/internal/repository/postgres"
	"github.com/NordCoder/Foodcart/internal/repository/s3store"
	"go.uber.org/zap"
)

func initBlobStore(ctx context.Context, cfg *config.Config) (*s3store.Store, error) {
	return s3store.New(ctx, s3store.Config{
		Endpoint:      cfg.S3.Endpoint,
		Region:        cfg.S3.Region,
		Bucket:        cfg.S3.Bucket,
		AccessKey:     cfg.S3.AccessKey,
		SecretKey:     cfg.S3.SecretKey,
		PublicBaseURL: cfg.S3.PublicBaseURL,
		PathStyle:     cfg.S3.PathStyle,
	})
}

func initProducer(ctx context.Context, cfg *config.Config, logger *zap.Logger) *kafka.Producer {
	return kafka.BootstrapProducer(ctx, cfg.Kafka.Brokers, kafka.TopicSpec{
		Name:              cfg.Kafka.Topic,
		NumPartitions:     cfg.Kafka.Partitions,
		ReplicationFactor: cfg.Kafka.ReplicationFactor,
		MaxWait:           10 * time.Second,
	}, cfg.Kafka.EnsureTopic, logger)
}

func initOutboxRunner(db *pg.DB, prod *kafka.Producer, cfg *config.Config, logger *zap.Logger) *outbox.Runner {
	dispatch := outbox.NewDispatcher(kafka.NewOrderEventsKafka(prod), retry.DefaultPublishPolicy(logger))
	return outbox.NewRunner(logger, pg.NewOutboxRepo(db), dispatch, outbox.Config{
		Workers:       cfg.Outbox.Workers,
		BatchSize:     cfg.Outbox.BatchSize,
		WaitTime:      cfg.Outbox.WaitTime,
		InProgressTTL: cfg.Outbox.InProgressTTL,
	})
}
