package kafka

import (
	"Vinelytics/internal/api/dto"
	"Vinelytics/internal/service"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// ViewsHandler 消费观看事件 topic，与 HTTP 上报走同一条摄入管道
type ViewsHandler struct {
	ingestSvc service.ViewIngestService
}

func NewViewsHandler(ingestSvc service.ViewIngestService) *ViewsHandler {
	return &ViewsHandler{ingestSvc: ingestSvc}
}

func (s *ViewsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("view consumer setup")
	return nil
}

func (s *ViewsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("view consumer cleanup")
	return nil
}

func (s *ViewsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-view consume claim")
	err := pullMessageBatch(session, claim, s.logic, s.retryable)
	if err != nil {
		log.Error("topic-view process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ViewsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event dto.ViewEventDTO
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}
	if event.EventID == "" {
		return service.ErrInvalidContentID
	}
	return s.ingestSvc.IngestView(ctx, &event)
}

// retryable 只重试存储故障；格式或校验错误属于毒消息
func (s *ViewsHandler) retryable(err error) bool {
	return errors.Is(err, service.ErrStoreUnavailable)
}
