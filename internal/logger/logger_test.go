package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestResolveLogFilePathDefaultDir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
	if filepath.Base(filepath.Dir(got)) != defaultLogDirName {
		t.Fatalf("unexpected log dir: %s", filepath.Dir(got))
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("expected log file to be created: %v", err)
	}
}

func TestReleaseModeWritesJSONWithServiceField(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log", Service: "shop-test"})
	log.Info("order_created", zap.String("order_id", "16102026101010"))
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, `"event":"order_created"`) {
		t.Fatalf("expected event key in log, got=%s", text)
	}
	if !strings.Contains(text, `"service":"shop-test"`) {
		t.Fatalf("expected service field in log, got=%s", text)
	}
}

func TestDebugModeDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestResolveLevel(t *testing.T) {
	if got := resolveLevel("", true).Level(); got != zap.DebugLevel {
		t.Fatalf("debug mode default want debug, got %s", got)
	}
	if got := resolveLevel("", false).Level(); got != zap.InfoLevel {
		t.Fatalf("release mode default want info, got %s", got)
	}
	if got := resolveLevel("WARN", false).Level(); got != zap.WarnLevel {
		t.Fatalf("explicit level want warn, got %s", got)
	}
	if got := resolveLevel("verbose", false).Level(); got != zap.InfoLevel {
		t.Fatalf("invalid level want info fallback, got %s", got)
	}
}
