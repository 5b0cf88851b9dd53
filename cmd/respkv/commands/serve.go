package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/respkv/internal/logger"
	"github.com/marmos91/respkv/internal/server"
	"github.com/marmos91/respkv/internal/store"
	"github.com/marmos91/respkv/internal/telemetry"
	"github.com/marmos91/respkv/pkg/config"
	"github.com/marmos91/respkv/pkg/metrics"
	promexport "github.com/marmos91/respkv/pkg/metrics/prometheus"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the respkv server",
	Long: `Start the respkv TCP server (and admin HTTP server, if configured
via metrics.enabled). Runs in the foreground until SIGINT or SIGTERM.

Examples:
  respkv serve
  respkv serve --config /etc/respkv/config.yaml
  RESPKV_LOGGING_LEVEL=DEBUG respkv serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    "respkv",
		ServiceVersion: Version,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		SampleRate:     cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	registry := metrics.InitRegistry(cfg.Metrics.Enabled)
	var commandMetrics metrics.CommandMetrics
	if cfg.Metrics.Enabled {
		commandMetrics = promexport.NewCommandMetrics()
	}

	logger.Info("configuration loaded",
		"log_level", cfg.Logging.Level,
		"addr", cfg.Server.Addr(),
		"metrics_enabled", cfg.Metrics.Enabled,
		"tracing_enabled", cfg.Tracing.Enabled)

	srv := server.New(server.Config{
		Addr:           cfg.Server.Addr(),
		MetricsEnabled: cfg.Metrics.Enabled,
		AdminAddr:      cfg.Metrics.Addr(),
		Registry:       registry,
	}, store.New(store.DefaultShardCount), commandMetrics)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Serve(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("server is running, press Ctrl+C to stop")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("shutdown signal received, initiating graceful shutdown")
		cancel()
		srv.Stop()
		select {
		case err := <-serverDone:
			if err != nil {
				logger.Error("server shutdown error", "error", err)
				return err
			}
			logger.Info("server stopped gracefully")
		case <-time.After(cfg.ShutdownTimeout):
			logger.Warn("shutdown timeout elapsed with connections still open",
				"timeout", cfg.ShutdownTimeout)
		}

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		logger.Info("server stopped")
	}

	return nil
}
