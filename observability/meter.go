package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/statewalker/statewalker-utils/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(ctx, config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Slot kinds used as the "kind" attribute.
const (
	KindValue    = "value"
	KindComplete = "complete"
	KindError    = "error"
)

// BridgeMetrics holds the instruments sequences report to.
type BridgeMetrics struct {
	pushed          metric.Int64Counter
	delivered       metric.Int64Counter
	discarded       metric.Int64Counter
	active          metric.Int64UpDownCounter
	closed          metric.Int64Counter
	cleanupDuration metric.Float64Histogram
}

// NewBridgeMetrics creates metric instruments on the given meter.
func NewBridgeMetrics(meter metric.Meter) (*BridgeMetrics, error) {
	pushed, err := meter.Int64Counter("bridge.slots.pushed",
		metric.WithDescription("Slots accepted by sequence queues"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bridge.slots.pushed counter: %w", err)
	}

	delivered, err := meter.Int64Counter("bridge.slots.delivered",
		metric.WithDescription("Slots resolved as delivered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bridge.slots.delivered counter: %w", err)
	}

	discarded, err := meter.Int64Counter("bridge.slots.discarded",
		metric.WithDescription("Slots resolved as discarded (overwritten, drained or rejected)"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bridge.slots.discarded counter: %w", err)
	}

	active, err := meter.Int64UpDownCounter("bridge.sequences.active",
		metric.WithDescription("Sequences started and not yet closed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bridge.sequences.active gauge: %w", err)
	}

	closed, err := meter.Int64Counter("bridge.sequences.closed",
		metric.WithDescription("Sequences closed by terminal reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bridge.sequences.closed counter: %w", err)
	}

	cleanupDuration, err := meter.Float64Histogram("bridge.cleanup.duration",
		metric.WithDescription("Duration of sequence cleanup callbacks in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bridge.cleanup.duration histogram: %w", err)
	}

	return &BridgeMetrics{
		pushed:          pushed,
		delivered:       delivered,
		discarded:       discarded,
		active:          active,
		closed:          closed,
		cleanupDuration: cleanupDuration,
	}, nil
}

// RecordPush counts a slot accepted by a queue.
func (m *BridgeMetrics) RecordPush(ctx context.Context, policy, kind string) {
	if m == nil {
		return
	}
	m.pushed.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPolicy, policy),
		attribute.String(AttrKind, kind),
	))
}

// RecordResolved counts a slot resolution.
func (m *BridgeMetrics) RecordResolved(ctx context.Context, policy, kind string, delivered bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrPolicy, policy),
		attribute.String(AttrKind, kind),
	)
	if delivered {
		m.delivered.Add(ctx, 1, attrs)
		return
	}
	m.discarded.Add(ctx, 1, attrs)
}

// RecordSequenceStart increments the active sequence count.
func (m *BridgeMetrics) RecordSequenceStart(ctx context.Context, policy string) {
	if m == nil {
		return
	}
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrPolicy, policy)))
}

// RecordSequenceEnd decrements active sequences and counts the terminal reason.
func (m *BridgeMetrics) RecordSequenceEnd(ctx context.Context, policy, reason string) {
	if m == nil {
		return
	}
	m.active.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrPolicy, policy)))
	m.closed.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPolicy, policy),
		attribute.String(AttrReason, reason),
	))
}

// RecordCleanup records how long a cleanup callback took and whether it failed.
func (m *BridgeMetrics) RecordCleanup(ctx context.Context, policy string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.cleanupDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrPolicy, policy),
		attribute.String(AttrStatus, status),
	))
}
