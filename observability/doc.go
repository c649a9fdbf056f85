// Package observability provides OpenTelemetry tracing and metrics for
// statewalker-utils sequences.
//
// Tracing and metrics providers are initialised once per process and exported
// over OTLP/HTTP:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("agen-demo"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("agen-demo"))
//	defer mp.Shutdown(ctx)
//
// BridgeMetrics holds the instruments a sequence reports to: slots pushed,
// delivered and discarded, active sequences, and cleanup latency. A nil
// *BridgeMetrics is valid and records nothing.
//
//	metrics, err := observability.NewBridgeMetrics(observability.Meter("agen-demo"))
//	seq := bridge.Iterate(initFn, bridge.WithMetrics(metrics))
package observability
