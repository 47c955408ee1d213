package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// BootstrapProducer makes sure the topic exists before the first publish.
// Topic creation failures are logged; the writer still starts.
func BootstrapProducer(ctx context.Context, brokers []string, spec TopicSpec, ensure bool, log *zap.Logger) *Producer {
	if ensure {
		if err := EnsureTopic(ctx, brokers, spec, log); err != nil {
			log.Warn("ensure topic failed", zap.String("topic", spec.Name), zap.Error(err))
		}
	}
	return NewProducer(brokers, spec.Name).WithLogger(log)
}

func BootstrapConsumer(ctx context.Context, cfg *ConsumerConfig, logger *zap.Logger) *Consumer {
	if err := EnsureTopic(ctx, cfg.Brokers, TopicSpec{
		Name:              cfg.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
		MaxWait:           5 * time.Second,
	}, logger); err != nil {
		logger.Warn("ensure topic failed", zap.String("topic", cfg.Topic), zap.Error(err))
	}
	cfg.Logger = logger
	return NewConsumer(cfg)
}
