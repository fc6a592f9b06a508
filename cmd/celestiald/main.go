// Command celestiald serves Moon and Mars observations over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/litescript/ls-celestial/internal/celestial"
	"github.com/litescript/ls-celestial/internal/config"
	"github.com/litescript/ls-celestial/internal/ephem"
	"github.com/litescript/ls-celestial/internal/logging"
	"github.com/litescript/ls-celestial/internal/observability"
	"github.com/litescript/ls-celestial/internal/server"
	"github.com/litescript/ls-celestial/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "celestiald: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	logger.Info("starting celestiald", "version", version.Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, logger)

	oracles, err := ephem.LoadSet(ephem.Options{LunarTermsPath: cfg.Ephemeris.LunarTermsPath}, logger)
	if err != nil {
		return fmt.Errorf("load ephemeris: %w", err)
	}

	collector, err := observability.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	pipeline := celestial.NewPipeline(
		celestial.NewEngine(oracles),
		celestial.WithLogger(logger),
		celestial.WithHooks(collector),
	)

	deps := server.Deps{
		Logger:   logger,
		Oracles:  oracles,
		Requests: collector,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = collector.Handler()
	}

	httpServer := server.NewRouter(cfg, server.NewBodyHandler(pipeline, logger), deps)
	return server.NewApp(httpServer, cfg.HTTP.ShutdownTimeout, logger).Run(ctx)
}
