package queue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// LowQueue 低优先级队列（文件清理、统计刷新）
	LowQueue = constants.QueueLow
)

// Client 队列客户端封装
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderPaid 推送订单支付任务
func (c *Client) EnqueueOrderPaid(payload OrderPaidPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderPaidTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, c.defaultQueue, opts...)
}

// EnqueueUploadCleanup 推送文件清理任务
func (c *Client) EnqueueUploadCleanup(payload UploadCleanupPayload, delay time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	if len(payload.Paths) == 0 {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	task, err := NewUploadCleanupTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, LowQueue, asynq.ProcessIn(delay), asynq.MaxRetry(3))
}

// EnqueueStatisticsRefresh 推送统计刷新任务（同一时间窗口内去重）
func (c *Client) EnqueueStatisticsRefresh(payload StatisticsRefreshPayload, window time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewStatisticsRefreshTask(payload)
	if err != nil {
		return err
	}
	opts := []asynq.Option{asynq.MaxRetry(1)}
	if window > 0 {
		opts = append(opts, asynq.Unique(window))
	}
	err = c.enqueue(task, LowQueue, opts...)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

func (c *Client) enqueue(task *asynq.Task, queueName string, opts ...asynq.Option) error {
	options := append([]asynq.Option{asynq.Queue(queueName)}, opts...)
	_, err := c.client.Enqueue(task, options...)
	return err
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 6, LowQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
