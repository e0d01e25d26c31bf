package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ingestd/internal/config"
	ingesthttp "github.com/fyrsmithlabs/ingestd/internal/http"
	"github.com/fyrsmithlabs/ingestd/internal/ingest"
	"github.com/fyrsmithlabs/ingestd/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ingestd HTTP daemon",
	Long: `Start the ingestd HTTP server.

The server exposes POST /api/v1/ingest, GET /health and GET /metrics, and
shuts down gracefully on SIGINT/SIGTERM.`,
	RunE: runServe,
}

// runServe wires configuration, logging, metrics, the ingestion service and
// the HTTP server, then blocks until shutdown.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() {
		_ = logging.Sync(logger)
	}()

	logger.Info("starting ingestd",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("tool", cfg.Tool.Binary),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := ingest.NewMetrics(registry)

	runner := ingest.NewRunner(cfg.Tool, logger.Named("runner"))
	service := ingest.NewService(cfg, runner, metrics, logger.Named("ingest"))

	server, err := ingesthttp.NewServer(service, registry, logger.Named("http"), cfg.Server)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := ingest.NewSweeper(cfg.Scratch, logger.Named("sweeper"))
	go sweeper.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
