package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/provider"
	"github.com/webbangiay/internal/queue"
	"github.com/webbangiay/internal/service"

	"github.com/hibiken/asynq"
)

func TestStatisticsWarmInterval(t *testing.T) {
	if got := statisticsWarmInterval(nil); got != defaultStatisticsWarmInterval {
		t.Fatalf("nil config should use default, got %v", got)
	}
	cfg := &config.Config{}
	cfg.Statistics.WarmIntervalSeconds = 30
	if got := statisticsWarmInterval(cfg); got != 30*time.Second {
		t.Fatalf("unexpected interval %v", got)
	}
	cfg.Statistics.WarmIntervalSeconds = -1
	if got := statisticsWarmInterval(cfg); got != 0 {
		t.Fatalf("negative value should disable warm loop, got %v", got)
	}
}

func TestHandleUploadCleanupRemovesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Upload.Dir = dir
	target := filepath.Join(dir, "brand", "logo.png")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(target, []byte("png"), 0o644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}

	consumer := NewConsumer(&provider.Container{
		Config:        cfg,
		UploadService: service.NewUploadService(cfg, nil),
	})
	task, err := queue.NewUploadCleanupTask(queue.UploadCleanupPayload{Paths: []string{"brand/logo.png", "brand/missing.png", ""}})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleUploadCleanup(context.Background(), task); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("file should be removed, stat err: %v", err)
	}
}

func TestHandlersRejectMalformedPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{
		Config:        &config.Config{},
		UploadService: service.NewUploadService(&config.Config{}, nil),
	})
	bad := asynq.NewTask(queue.TaskUploadCleanup, []byte("{"))
	if err := consumer.handleUploadCleanup(context.Background(), bad); err == nil {
		t.Fatalf("malformed payload should fail")
	}
	if err := consumer.handleOrderPaid(context.Background(), asynq.NewTask(queue.TaskOrderPaid, []byte(`{"order_id":""}`))); err != nil {
		t.Fatalf("empty order id should be skipped, got %v", err)
	}
}

func TestRegisterNilSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(asynq.NewServeMux())
	NewConsumer(&provider.Container{}).Register(nil)
}
