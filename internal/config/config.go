package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/listen/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "listen.json"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultWebSocketPath is the default WebSocket endpoint.
	DefaultWebSocketPath = "/ws"

	// DefaultMetricsPath is the default Prometheus endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultReadTimeout is the default per-frame read timeout.
	DefaultReadTimeout = "60s"

	// DefaultWriteTimeout is the default per-frame write timeout.
	DefaultWriteTimeout = "10s"

	// DefaultMaxMessageSize is the default incoming message limit in bytes.
	DefaultMaxMessageSize = 64 * 1024

	// DefaultName is the default metrics namespace and tracer name.
	DefaultName = "listen"
)

// Config represents the complete listen.json configuration.
type Config struct {
	// Server contains HTTP and WebSocket settings.
	Server ServerConfig `json:"server"`

	// Log contains logging settings.
	Log LogConfig `json:"log"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing"`

	configPath string
}

// ServerConfig contains HTTP and WebSocket settings.
type ServerConfig struct {
	// Addr is the TCP address to listen on.
	Addr string `json:"addr,omitempty"`

	// WebSocketPath is the path of the listener bridge endpoint.
	WebSocketPath string `json:"websocketPath,omitempty"`

	// MetricsPath is the path of the Prometheus endpoint.
	MetricsPath string `json:"metricsPath,omitempty"`

	// ReadTimeout is the maximum wait for the next frame (e.g., "60s").
	// "0s" disables it.
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout bounds each frame write (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// MaxMessageSize is the maximum incoming message size in bytes.
	MaxMessageSize int64 `json:"maxMessageSize,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled serves metrics and instruments registrars.
	Enabled *bool `json:"enabled,omitempty"`

	// Namespace is the metric name prefix.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Name is the tracer name.
	Name string `json:"name,omitempty"`

	// DeliverySpans creates a span per delivered event.
	DeliverySpans bool `json:"deliverySpans,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads listen.json from the specified directory. A missing file
// yields the defaults.
func Load(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("L031").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("L031").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("L031").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("L031").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.WebSocketPath == "" {
		c.Server.WebSocketPath = DefaultWebSocketPath
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = DefaultMaxMessageSize
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Metrics.Enabled == nil {
		enabled := true
		c.Metrics.Enabled = &enabled
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultName
	}

	if c.Tracing.Name == "" {
		c.Tracing.Name = DefaultName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	for _, p := range []struct{ field, value string }{
		{"server.websocketPath", c.Server.WebSocketPath},
		{"server.metricsPath", c.Server.MetricsPath},
	} {
		if !strings.HasPrefix(p.value, "/") {
			return errors.New("L030").WithDetailf("%s must start with '/', got %q", p.field, p.value)
		}
	}
	if c.MetricsEnabled() && c.Server.WebSocketPath == c.Server.MetricsPath {
		return errors.New("L030").WithDetailf("server.websocketPath and server.metricsPath are both %q", c.Server.WebSocketPath)
	}

	for _, d := range []struct{ field, value string }{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
	} {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return errors.New("L030").WithDetailf("%s: %v", d.field, err)
		}
		if v < 0 {
			return errors.New("L030").WithDetailf("%s must not be negative", d.field)
		}
	}

	if c.Server.MaxMessageSize < 0 {
		return errors.New("L030").WithDetail("server.maxMessageSize must not be negative")
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("L030").WithDetailf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("L030").WithDetailf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ReadTimeout returns the parsed read timeout. Invalid values yield zero.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// WriteTimeout returns the parsed write timeout. Invalid values yield zero.
func (c *Config) WriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

// MetricsEnabled reports whether metrics are served.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}

// LogLevel returns the slog level for Log.Level.
func (c *Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

// NewLogger builds a text or JSON slog logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
