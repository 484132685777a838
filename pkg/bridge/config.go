package bridge

import (
	"log/slog"
	"time"
)

// Config configures a Bridge.
type Config struct {
	// ReadTimeout is the maximum time to wait for the next frame.
	// Zero disables the deadline.
	ReadTimeout time.Duration

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming message in bytes.
	MaxMessageSize int64

	// Logger receives bridge logs. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultConfig returns the default bridge configuration.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
