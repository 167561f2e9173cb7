package cron

import (
	"Vinelytics/internal/job"
	"fmt"
	log "log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	trendingWarmJob *job.TrendingWarmJob
	warmInterval    time.Duration
}

func NewCronManager(trendingWarmJob *job.TrendingWarmJob, warmInterval time.Duration) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		trendingWarmJob: trendingWarmJob,
		warmInterval:    warmInterval,
	}
}

// RegisterJobs 注册定时任务，预热周期跟随快照过期间隔
func (s *Manager) RegisterJobs() error {
	spec := fmt.Sprintf("@every %s", s.warmInterval)
	if _, err := s.engine.AddJob(spec, s.trendingWarmJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
