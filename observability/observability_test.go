package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestConfig_Derived(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	c.SampleRate = 0.5

	tc := c.TracerConfig("svc", "2.0.0", "staging")
	if tc.Endpoint != "localhost:4318" || tc.SampleRate != 0.5 || tc.ServiceVersion != "2.0.0" {
		t.Errorf("unexpected tracer config %+v", tc)
	}
	mc := c.MeterConfig("svc", "2.0.0", "staging")
	if mc.Interval != 15*time.Second || mc.Environment != "staging" {
		t.Errorf("unexpected meter config %+v", mc)
	}
}

func TestBridgeMetrics_Noop(t *testing.T) {
	metrics, err := NewBridgeMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordSequenceStart(ctx, "fifo")
	metrics.RecordPush(ctx, "fifo", KindValue)
	metrics.RecordResolved(ctx, "fifo", KindValue, true)
	metrics.RecordCleanup(ctx, "fifo", time.Millisecond, nil)
	metrics.RecordSequenceEnd(ctx, "fifo", "completed")
}

func TestBridgeMetrics_NilReceiver(t *testing.T) {
	var metrics *BridgeMetrics
	ctx := context.Background()
	// None of these may panic.
	metrics.RecordSequenceStart(ctx, "latest")
	metrics.RecordPush(ctx, "latest", KindValue)
	metrics.RecordResolved(ctx, "latest", KindValue, false)
	metrics.RecordCleanup(ctx, "latest", time.Millisecond, errors.New("x"))
	metrics.RecordSequenceEnd(ctx, "latest", "cancelled")
}

func TestBridgeMetrics_ManualReader(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewBridgeMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	for range 3 {
		metrics.RecordPush(ctx, "fifo", KindValue)
	}
	metrics.RecordResolved(ctx, "fifo", KindValue, true)
	metrics.RecordResolved(ctx, "fifo", KindValue, false)
	metrics.RecordResolved(ctx, "fifo", KindValue, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					got[m.Name] += dp.Value
				}
			}
		}
	}

	if got["bridge.slots.pushed"] != 3 {
		t.Errorf("expected 3 pushed, got %d", got["bridge.slots.pushed"])
	}
	if got["bridge.slots.delivered"] != 1 {
		t.Errorf("expected 1 delivered, got %d", got["bridge.slots.delivered"])
	}
	if got["bridge.slots.discarded"] != 2 {
		t.Errorf("expected 2 discarded, got %d", got["bridge.slots.discarded"])
	}
}

func TestSequenceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	_, span := StartSequenceSpan(context.Background(), "ticks", "id-1", "fifo")
	EndSequenceSpan(span, "errored", 2, 1, errors.New("producer failed"))

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	s := ended[0]
	if s.Name() != SpanSequence {
		t.Errorf("expected span name %s, got %s", SpanSequence, s.Name())
	}
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status().Code)
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs[AttrReason].AsString() != "errored" {
		t.Errorf("expected reason=errored, got %v", attrs[AttrReason])
	}
	if attrs[AttrDelivered].AsInt64() != 2 {
		t.Errorf("expected delivered=2, got %v", attrs[AttrDelivered])
	}
	if attrs[AttrPolicy].AsString() != "fifo" {
		t.Errorf("expected policy=fifo, got %v", attrs[AttrPolicy])
	}
}

func TestTracerAndMeter(t *testing.T) {
	if Tracer("test-tracer") == nil {
		t.Fatal("expected non-nil tracer")
	}
	if Meter("test-meter") == nil {
		t.Fatal("expected non-nil meter")
	}
}
