// Command agen-demo runs a producer with random delays against a consumer
// with random delays and prints every message the consumer receives.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/statewalker/statewalker-utils/bridge"
	"github.com/statewalker/statewalker-utils/config"
	"github.com/statewalker/statewalker-utils/dispose"
	"github.com/statewalker/statewalker-utils/logger"
	"github.com/statewalker/statewalker-utils/observability"
	"github.com/statewalker/statewalker-utils/version"
)

const serviceName = "agen-demo"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)
	log.Info("starting", version.Get().Fields())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown := dispose.NewRegistry()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown.Cleanup(shutdownCtx); err != nil {
			log.Warn("shutdown incomplete", logger.ErrorFields("shutdown", err))
		}
	}()

	opts := []bridge.Option{
		bridge.WithName("greetings"),
		bridge.WithLogger(log.WithComponent("bridge")),
	}
	if cfg.Observability.Enabled {
		telemetry, err := setupTelemetry(ctx, &cfg, shutdown)
		if err != nil {
			return err
		}
		opts = append(opts, telemetry...)
	}

	seq, err := newSequence(cfg.Producer, log.WithComponent("producer"), opts...)
	if err != nil {
		return err
	}

	log.Info("consuming", logger.Fields(
		logger.FieldPolicy, cfg.Producer.Policy,
		"count", cfg.Producer.Count,
		"await", cfg.Producer.Await,
	))
	summary, err := consume(ctx, cfg.Producer, seq, func(msg string) { fmt.Println(msg) })
	log.Info("done", logger.Fields(
		"received", summary.Received,
		logger.FieldDelivered, summary.Stats.Delivered,
		logger.FieldDiscarded, summary.Stats.Discarded,
	))
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// setupTelemetry starts the OTLP meter and tracer providers, registers their
// shutdown, and returns the bridge options that report to them.
func setupTelemetry(ctx context.Context, cfg *Config, shutdown *dispose.Registry) ([]bridge.Option, error) {
	mp, err := observability.InitMeter(ctx, cfg.Observability.MeterConfig(cfg.Name, cfg.Version, cfg.Environment))
	if err != nil {
		return nil, err
	}
	shutdown.Register(mp.Shutdown)

	tp, err := observability.InitTracer(ctx, cfg.Observability.TracerConfig(cfg.Name, cfg.Version, cfg.Environment))
	if err != nil {
		return nil, err
	}
	shutdown.Register(tp.Shutdown)

	metrics, err := observability.NewBridgeMetrics(observability.Meter(serviceName))
	if err != nil {
		return nil, err
	}
	return []bridge.Option{bridge.WithMetrics(metrics), bridge.WithTracing()}, nil
}
