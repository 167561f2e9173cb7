package job

import (
	"Vinelytics/internal/pkg/consts"
	"Vinelytics/internal/pkg/logger"
	"Vinelytics/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// TrendingWarmJob 周期性重算全局榜单快照，让查询路径大多命中新鲜缓存。
// 任务失败只记日志，不影响任何请求
type TrendingWarmJob struct {
	trendingSvc service.TrendingService
}

func NewTrendingWarmJob(trendingSvc service.TrendingService) *TrendingWarmJob {
	return &TrendingWarmJob{trendingSvc: trendingSvc}
}

func (s *TrendingWarmJob) Run() {
	traceID := "job-trending-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	warmed := 0

	if _, err := s.trendingSvc.TrendingVines(ctx); err != nil {
		log.ErrorContext(ctx, "warm trending vines error", "err", err)
	} else {
		warmed++
	}

	if _, err := s.trendingSvc.TrendingViners(ctx); err != nil {
		log.ErrorContext(ctx, "warm trending viners error", "err", err)
	} else {
		warmed++
	}

	if _, err := s.trendingSvc.AscendingVines(ctx); err != nil {
		log.ErrorContext(ctx, "warm ascending vines error", "err", err)
	} else {
		warmed++
	}

	if _, err := s.trendingSvc.TrendingHashtags(ctx, consts.DefaultTimeframe); err != nil {
		log.ErrorContext(ctx, "warm trending hashtags error", "err", err)
	} else {
		warmed++
	}

	log.InfoContext(ctx, "trending snapshots warmed", "warmed", warmed)
}
