package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/listen/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.WebSocketPath != DefaultWebSocketPath {
		t.Errorf("Server.WebSocketPath = %q, want %q", cfg.Server.WebSocketPath, DefaultWebSocketPath)
	}
	if cfg.Server.MaxMessageSize != DefaultMaxMessageSize {
		t.Errorf("Server.MaxMessageSize = %d, want %d", cfg.Server.MaxMessageSize, DefaultMaxMessageSize)
	}
	if cfg.ReadTimeout() != 60*time.Second {
		t.Errorf("ReadTimeout() = %v, want 60s", cfg.ReadTimeout())
	}
	if !cfg.MetricsEnabled() {
		t.Error("metrics should be enabled by default")
	}
	if cfg.Tracing.Name != DefaultName {
		t.Errorf("Tracing.Name = %q, want %q", cfg.Tracing.Name, DefaultName)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Missing file yields defaults
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}

	configJSON := `{
  "server": {
    "addr": "127.0.0.1:9000",
    "websocketPath": "/listen",
    "readTimeout": "5s"
  },
  "log": {"level": "debug", "format": "json"},
  "metrics": {"enabled": false},
  "tracing": {"deliverySpans": true}
}
`
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.WebSocketPath != "/listen" {
		t.Errorf("Server.WebSocketPath = %q", cfg.Server.WebSocketPath)
	}
	if cfg.Server.MetricsPath != DefaultMetricsPath {
		t.Errorf("Server.MetricsPath = %q, want default", cfg.Server.MetricsPath)
	}
	if cfg.ReadTimeout() != 5*time.Second {
		t.Errorf("ReadTimeout() = %v, want 5s", cfg.ReadTimeout())
	}
	if cfg.WriteTimeout() != 10*time.Second {
		t.Errorf("WriteTimeout() = %v, want 10s", cfg.WriteTimeout())
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
	if cfg.MetricsEnabled() {
		t.Error("metrics should be disabled")
	}
	if !cfg.Tracing.DeliverySpans {
		t.Error("Tracing.DeliverySpans should be true")
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "L031") {
		t.Fatalf("expected L031, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.HasCode(err, "L031") {
		t.Fatalf("expected L031, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := New()
	cfg.Server.Addr = ":9999"
	cfg.Log.Format = "json"

	path := filepath.Join(tmpDir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.Addr != ":9999" || loaded.Log.Format != "json" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"relative ws path", func(c *Config) { c.Server.WebSocketPath = "ws" }, "websocketPath"},
		{"relative metrics path", func(c *Config) { c.Server.MetricsPath = "metrics" }, "metricsPath"},
		{"path clash", func(c *Config) { c.Server.MetricsPath = c.Server.WebSocketPath }, "both"},
		{"path clash with metrics disabled", func(c *Config) {
			off := false
			c.Metrics.Enabled = &off
			c.Server.MetricsPath = c.Server.WebSocketPath
		}, ""},
		{"bad timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, "readTimeout"},
		{"negative timeout", func(c *Config) { c.Server.WriteTimeout = "-1s" }, "negative"},
		{"zero timeout", func(c *Config) { c.Server.ReadTimeout = "0s" }, ""},
		{"negative size", func(c *Config) { c.Server.MaxMessageSize = -1 }, "maxMessageSize"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"warning alias", func(c *Config) { c.Log.Level = "WARNING" }, ""},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, "L030") {
				t.Fatalf("expected L030, got %v", err)
			}
			if !strings.Contains(err.(*errors.Error).Detail, tt.wantErr) {
				t.Errorf("detail %q does not mention %q", err.(*errors.Error).Detail, tt.wantErr)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "token", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"token":7`) {
		t.Errorf("unexpected JSON output: %s", out)
	}

	buf.Reset()
	cfg.Log.Format = "text"
	cfg.NewLogger(&buf).Error("boom")
	if !strings.Contains(buf.String(), "msg=boom") {
		t.Errorf("unexpected text output: %s", buf.String())
	}
}
