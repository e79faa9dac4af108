package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/webbangiay/internal/config"
)

type stubService struct {
	name     string
	startErr error
	stopped  bool
	block    bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *stubService) Stop(ctx context.Context) error {
	s.stopped = true
	return nil
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{
		"":       ModeAll,
		" API ":  ModeAPI,
		"worker": ModeWorker,
		"all":    ModeAll,
	}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("unknown mode should be rejected")
	}
}

func TestBuildRunnerRejectsBadInput(t *testing.T) {
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
	if _, err := BuildRunner(&config.Config{}, "cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestRunnerStopsAllServicesOnError(t *testing.T) {
	failing := &stubService{name: "failing", startErr: errors.New("boom")}
	blocking := &stubService{name: "blocking", block: true}
	runner := NewRunner(failing, blocking)

	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected start error, got %v", err)
	}
	if !failing.stopped || !blocking.stopped {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerCanceledContextIsClean(t *testing.T) {
	blocking := &stubService{name: "blocking", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewRunner(blocking).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("canceled context should return nil, got %v", err)
	}
}
