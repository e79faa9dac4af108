package worker

import (
	"context"
	"errors"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	defaultStatisticsWarmInterval = 10 * time.Minute
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Container != nil && s.consumer.StatisticsService != nil {
		go s.runStatisticsWarmLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runStatisticsWarmLoop 周期性预热看板统计
func (s *Service) runStatisticsWarmLoop(ctx context.Context) {
	interval := statisticsWarmInterval(s.consumer.Config)
	if interval <= 0 {
		return
	}
	runOnce := func() {
		if err := s.consumer.StatisticsService.Warm(ctx); err != nil {
			logger.Warnw("worker_statistics_warm_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

// statisticsWarmInterval 负数表示关闭预热
func statisticsWarmInterval(cfg *config.Config) time.Duration {
	if cfg == nil || cfg.Statistics.WarmIntervalSeconds == 0 {
		return defaultStatisticsWarmInterval
	}
	if cfg.Statistics.WarmIntervalSeconds < 0 {
		return 0
	}
	return time.Duration(cfg.Statistics.WarmIntervalSeconds) * time.Second
}
