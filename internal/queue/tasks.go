package queue

import (
	"encoding/json"

	"github.com/webbangiay/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPaid 订单支付成功后处理任务
	TaskOrderPaid = constants.TaskOrderPaid
	// TaskUploadCleanup 清理被替换的上传文件
	TaskUploadCleanup = constants.TaskUploadCleanup
	// TaskStatisticsRefresh 刷新统计缓存
	TaskStatisticsRefresh = constants.TaskStatisticsRefresh
)

// OrderPaidPayload 订单支付任务载荷
type OrderPaidPayload struct {
	OrderID string `json:"order_id"`
}

// UploadCleanupPayload 文件清理任务载荷（相对路径）
type UploadCleanupPayload struct {
	Paths []string `json:"paths"`
}

// StatisticsRefreshPayload 统计刷新任务载荷
type StatisticsRefreshPayload struct {
	Reason string `json:"reason"`
}

// NewOrderPaidTask 创建订单支付任务
func NewOrderPaidTask(payload OrderPaidPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOrderPaid, payload)
}

// NewUploadCleanupTask 创建文件清理任务
func NewUploadCleanupTask(payload UploadCleanupPayload) (*asynq.Task, error) {
	return newJSONTask(TaskUploadCleanup, payload)
}

// NewStatisticsRefreshTask 创建统计刷新任务
func NewStatisticsRefreshTask(payload StatisticsRefreshPayload) (*asynq.Task, error) {
	return newJSONTask(TaskStatisticsRefresh, payload)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}
