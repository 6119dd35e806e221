// Package observability wires OpenTelemetry tracing and metrics into
// restkit.
//
// InitTracer and InitMeter install OTLP/HTTP exporters as the global
// providers. Observer turns every completed dispatch into a span and two
// instruments:
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracing)
//	defer tp.Shutdown(ctx)
//
//	obs, err := observability.NewObserver(observability.Tracer(), observability.Meter())
//	handler := rest.NewHandler(transport, rest.WithObserver(obs))
package observability
