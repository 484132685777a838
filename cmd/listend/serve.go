package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/vango-dev/listen/internal/config"
	"github.com/vango-dev/listen/internal/errors"
	"github.com/vango-dev/listen/pkg/bridge"
	"github.com/vango-dev/listen/pkg/discard"
	"github.com/vango-dev/listen/pkg/instrument"
	"github.com/vango-dev/listen/pkg/listener"
)

type serveOptions struct {
	dir       string
	addr      string
	logLevel  string
	logFormat string
	noMetrics bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the listener bridge server",
		Long: `Start the HTTP server hosting the WebSocket listener bridge.

Settings are read from listen.json in the config directory.
Flags override file values.

Examples:
  listend serve
  listend serve --addr=:9000
  listend serve --log-level=debug --log-format=json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "config", "c", ".", "Directory containing listen.json")
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Address to listen on (default from listen.json)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format: text, json")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "Disable the Prometheus endpoint")

	return cmd
}

// loadConfig loads listen.json and applies command-line overrides.
func loadConfig(opts serveOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.dir)
	if err != nil {
		return nil, err
	}

	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if opts.noMetrics {
		off := false
		cfg.Metrics.Enabled = &off
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(cfg, logger, prometheus.NewRegistry()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printBanner()
	fmt.Printf("  serve %s\n\n", version)
	logger.Info("listening",
		"addr", cfg.Server.Addr,
		"websocket", cfg.Server.WebSocketPath,
		"metrics", cfg.MetricsEnabled(),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return errors.New("L040").Wrap(err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("L040").Wrap(err)
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return errors.New("L040").Wrap(err)
	}
	return nil
}

// newRouter builds the HTTP surface: health check, metrics and the
// WebSocket bridge.
func newRouter(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	var metrics *instrument.Metrics
	if cfg.MetricsEnabled() {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = instrument.NewMetrics(
			instrument.WithNamespace(cfg.Metrics.Namespace),
			instrument.WithRegistry(reg),
		)
		r.Handle(cfg.Server.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	tracing := instrument.NewTracing(
		instrument.WithTracerName(cfg.Tracing.Name),
		instrument.WithDeliverySpans(cfg.Tracing.DeliverySpans),
	)

	bcfg := bridge.Config{
		ReadTimeout:    cfg.ReadTimeout(),
		WriteTimeout:   cfg.WriteTimeout(),
		MaxMessageSize: cfg.Server.MaxMessageSize,
		Logger:         logger,
	}
	h := bridge.NewHandler(bcfg, func(ctx context.Context, b *bridge.Bridge) discard.Discarder {
		var registrar listener.Registrar = tracing.Wrap(b)
		if metrics != nil {
			registrar = metrics.Wrap(registrar)
		}
		return bindDemo(registrar, logger.With("session", middleware.GetReqID(ctx)))
	})
	h.OnSession = func(b *bridge.Bridge, err error) {
		switch {
		case err != nil:
			logger.Warn("session failed", "error", err)
		case b.Closed():
			logger.Debug("session closed")
		default:
			logger.Debug("session opened", "listeners", b.Active())
		}
	}
	r.Handle(cfg.Server.WebSocketPath, h)

	return r
}
