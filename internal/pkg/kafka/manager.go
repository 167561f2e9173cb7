package kafka

import (
	"Vinelytics/internal/api/config"
	"Vinelytics/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理观看事件消费者
type ConsumerManager struct {
	viewsConsumer sarama.ConsumerGroup
	viewsHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, ingestSvc service.ViewIngestService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	viewsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaViewConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		viewsConsumer: viewsConsumer,
		viewsHandler:  NewViewsHandler(ingestSvc),
	}, nil
}

// Start 启动消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaViewConsumer.Topic
		log.Info("View consumer started", "topic", topic)
		for {
			if err := m.viewsConsumer.Consume(ctx, []string{topic}, m.viewsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.viewsConsumer.Close(); err != nil {
		log.Error("Failed to close view consumer", "err", err)
	}

	return nil
}
