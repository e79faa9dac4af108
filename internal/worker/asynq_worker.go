package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/provider"
	"github.com/webbangiay/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPaid, c.handleOrderPaid)
	mux.HandleFunc(queue.TaskUploadCleanup, c.handleUploadCleanup)
	mux.HandleFunc(queue.TaskStatisticsRefresh, c.handleStatisticsRefresh)
}

func (c *Consumer) handleOrderPaid(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		return nil
	}
	var payload queue.OrderPaidPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_paid_unmarshal_failed", "error", err)
		return err
	}
	orderID := strings.TrimSpace(payload.OrderID)
	if orderID == "" {
		logger.Debugw("worker_order_paid_skip_invalid_payload")
		return nil
	}
	if c.OrderRepo != nil {
		order, err := c.OrderRepo.GetByID(orderID)
		if err != nil {
			logger.Warnw("worker_order_paid_fetch_order_failed", "order_id", orderID, "error", err)
			return err
		}
		if order == nil {
			logger.Debugw("worker_order_paid_skip_order_not_found", "order_id", orderID)
			return nil
		}
		logger.Infow("worker_order_paid", "order_id", order.ID, "total_price", order.TotalPrice.String(), "payment_method", order.PaymentMethod)
	}
	if c.StatisticsService == nil {
		return nil
	}
	if err := c.StatisticsService.Invalidate(ctx); err != nil {
		logger.Warnw("worker_order_paid_invalidate_statistics_failed", "order_id", orderID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleUploadCleanup(_ context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil || c.UploadService == nil {
		return nil
	}
	var payload queue.UploadCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_upload_cleanup_unmarshal_failed", "error", err)
		return err
	}
	var firstErr error
	for _, path := range payload.Paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := c.UploadService.Delete(path); err != nil {
			logger.Warnw("worker_upload_cleanup_delete_failed", "path", path, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		logger.Debugw("worker_upload_cleanup_deleted", "path", path)
	}
	return firstErr
}

func (c *Consumer) handleStatisticsRefresh(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil || c.StatisticsService == nil {
		return nil
	}
	var payload queue.StatisticsRefreshPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Warnw("worker_statistics_refresh_unmarshal_failed", "error", err)
			return err
		}
	}
	if err := c.StatisticsService.Invalidate(ctx); err != nil {
		logger.Warnw("worker_statistics_invalidate_failed", "reason", payload.Reason, "error", err)
	}
	if err := c.StatisticsService.Warm(ctx); err != nil {
		logger.Warnw("worker_statistics_warm_failed", "reason", payload.Reason, "error", err)
		return err
	}
	logger.Debugw("worker_statistics_refreshed", "reason", payload.Reason)
	return nil
}
