package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/melih/docker-agent/internal/adapters/docker"
	"github.com/melih/docker-agent/internal/adapters/filestore"
	"github.com/melih/docker-agent/internal/adapters/http"
	"github.com/melih/docker-agent/internal/adapters/memory"
	"github.com/melih/docker-agent/internal/adapters/ollama"
	"github.com/melih/docker-agent/internal/adapters/webhook"
	"github.com/melih/docker-agent/internal/config"
	"github.com/melih/docker-agent/internal/core/chat"
	"github.com/melih/docker-agent/internal/core/ports"
	"github.com/melih/docker-agent/internal/core/tools"
	"github.com/melih/docker-agent/internal/observability"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context, v *viper.Viper, configFile string) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	observability.Setup(cfg.Log.Level, cfg.Log.Format)
	logger := slog.Default()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.MustNewMetrics(reg)

	// 1. Initialize Adapters (Infrastructure)
	containers, closeRuntime, err := newContainerService(cfg.Runtime, logger)
	if err != nil {
		return err
	}
	defer closeRuntime()

	store, err := filestore.NewOS(cfg.SharedDir)
	if err != nil {
		return err
	}
	notifier := webhook.New(cfg.N8NWebhookURL, cfg.WebhookTimeout, logger, metrics)
	model := ollama.NewClient(ollama.Config{
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})

	// 2. Core services
	registry, err := tools.NewRegistry()
	if err != nil {
		return err
	}
	executor := tools.NewExecutor(containers, store, logger, metrics)
	agent := chat.NewService(model, registry, executor, notifier, logger, metrics)

	// 3. HTTP surface
	app := http.NewApp(http.Dependencies{
		Chat:      agent,
		Files:     store,
		Notifier:  notifier,
		Gatherer:  reg,
		Logger:    logger,
		BodyLimit: cfg.BodyLimit,
	})

	// 4. Serve until interrupted
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			"addr", cfg.ListenAddr,
			"runtime", cfg.Runtime,
			"shared_dir", store.Root(),
			"model", model.Model(),
			"n8n_url", notifier.BaseURL(),
		)
		if err := app.Listen(cfg.ListenAddr); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("server shutting down")
		return app.ShutdownWithContext(shutdownCtx)
	})
	return g.Wait()
}

func newContainerService(runtime string, logger *slog.Logger) (ports.ContainerService, func(), error) {
	if runtime == config.RuntimeMemory {
		logger.Warn("using in-memory container runtime; no Docker daemon will be contacted")
		return memory.NewRuntime(), func() {}, nil
	}
	adapter, err := docker.NewAdapter(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Docker adapter: %w", err)
	}
	return adapter, func() {
		if err := adapter.Close(); err != nil {
			logger.Warn("docker client close failed", "err", err)
		}
	}, nil
}
