package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clusterpilot/internal/config"
	"github.com/fyrsmithlabs/clusterpilot/internal/diagnosis"
	httpapi "github.com/fyrsmithlabs/clusterpilot/internal/http"
	"github.com/fyrsmithlabs/clusterpilot/internal/llm"
	"github.com/fyrsmithlabs/clusterpilot/internal/planner"
	"github.com/fyrsmithlabs/clusterpilot/internal/services"
	"github.com/fyrsmithlabs/clusterpilot/internal/telemetry"
	"github.com/fyrsmithlabs/clusterpilot/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the clusterpilot HTTP API",
	Long: `Start the HTTP API serving command planning, log diagnosis, and the
tool catalog.

Examples:
  # Start with defaults (port 8384)
  clusterpilot serve

  # Start with a config file
  clusterpilot serve --config clusterpilot.yaml

  # Override via environment
  CLUSTERPILOT_SERVER_HTTP_PORT=9090 clusterpilot serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync() // Best-effort sync on shutdown
	}()

	logger.Info("starting clusterpilot",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("model", cfg.LLM.Model),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout.Duration()),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Observability.Enabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: version,
		Endpoint:       cfg.Observability.Endpoint,
		Insecure:       cfg.Observability.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	registry, err := buildServices(cfg, logger)
	if err != nil {
		return err
	}

	server, err := httpapi.NewServer(registry.Planner(), registry.Diagnosis(), logger, &httpapi.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("creating http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// buildServices constructs the tool registry, generation client, planner,
// and diagnosis engine, aggregated into a service registry.
func buildServices(cfg *config.Config, logger *zap.Logger) (services.Registry, error) {
	toolRegistry, err := tools.NewRegistry(tools.Builtin())
	if err != nil {
		return nil, fmt.Errorf("building tool registry: %w", err)
	}

	client, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey.Value(),
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout.Duration(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating generation client: %w", err)
	}

	plannerSvc, err := planner.NewService(toolRegistry, client, logger)
	if err != nil {
		return nil, fmt.Errorf("creating planner: %w", err)
	}

	diagnosisSvc, err := diagnosis.NewService(&diagnosis.Config{
		MaxErrorLines:  cfg.Diagnosis.MaxErrorLines,
		MaxSampleLines: cfg.Diagnosis.MaxSampleLines,
	}, client, logger)
	if err != nil {
		return nil, fmt.Errorf("creating diagnosis engine: %w", err)
	}

	return services.NewRegistry(services.Options{
		Planner:   plannerSvc,
		Diagnosis: diagnosisSvc,
		Tools:     toolRegistry,
	}), nil
}
