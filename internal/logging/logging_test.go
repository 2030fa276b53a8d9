package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"todoctl/internal/config"
	"todoctl/internal/logging"
)

func TestNew_DefaultLevelHidesInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, config.New(t.TempDir()))

	logger.Info("hidden")
	logger.Warn("shown", "op", "load")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "op=load") {
		t.Errorf("expected warn line with fields, got %q", out)
	}
}

func TestNew_DebugFlag(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.New(t.TempDir())
	cfg.Debug = true
	logger := logging.New(&buf, cfg)

	logger.Debug("request", "method", "GET")

	if !strings.Contains(buf.String(), "request") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	cfg := config.New(t.TempDir())
	cfg.LogFile = filepath.Join(cfg.Dir, "nested", "ui.log")

	logger, f, err := logging.OpenFile(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Error("boom")
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "boom") {
		t.Errorf("expected log line in file, got %q", data)
	}
}

type recorder struct{ set int }

func (r *recorder) SetLogger(*log.Logger) { r.set++ }

func TestRedirect(t *testing.T) {
	r := &recorder{}
	if !logging.Redirect(r, logging.Discard()) || r.set != 1 {
		t.Errorf("expected redirect to reach SetLogger, got %d calls", r.set)
	}
	if logging.Redirect(struct{}{}, logging.Discard()) {
		t.Error("redirect should report false for a target without SetLogger")
	}
}

func TestOpenFile_CreatesConfigDir(t *testing.T) {
	cfg := config.New(filepath.Join(t.TempDir(), "fresh"))
	cfg.LogFile = filepath.Join(t.TempDir(), "elsewhere", "ui.log")

	_, f, err := logging.OpenFile(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Close()

	if info, err := os.Stat(cfg.Dir); err != nil || !info.IsDir() {
		t.Errorf("expected config dir %s to exist: %v", cfg.Dir, err)
	}
}
