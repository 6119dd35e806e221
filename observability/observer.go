package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restkit/rest"
)

// Span and instrument names.
const (
	SpanDispatch        = "rest.dispatch"
	MetricDispatchTotal = "restkit.dispatch.total"
	MetricDispatchTime  = "restkit.dispatch.duration"
)

// Attribute keys.
const (
	AttrMethod   = "http.request.method"
	AttrURL      = "url.full"
	AttrStatus   = "http.response.status_code"
	AttrCategory = "restkit.category"
)

// Observer records each dispatch as a span covering its duration plus a
// counter and a duration histogram.
type Observer struct {
	tracer   trace.Tracer
	total    metric.Int64Counter
	duration metric.Float64Histogram
}

var _ rest.Observer = (*Observer)(nil)

// NewObserver creates the instruments on meter.
func NewObserver(tracer trace.Tracer, meter metric.Meter) (*Observer, error) {
	total, err := meter.Int64Counter(MetricDispatchTotal,
		metric.WithDescription("Completed dispatches by category"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: %s: %w", MetricDispatchTotal, err)
	}
	duration, err := meter.Float64Histogram(MetricDispatchTime,
		metric.WithDescription("Dispatch duration from send to stop"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: %s: %w", MetricDispatchTime, err)
	}
	return &Observer{tracer: tracer, total: total, duration: duration}, nil
}

// ObserveDispatch implements rest.Observer.
func (o *Observer) ObserveDispatch(ctx context.Context, ev rest.DispatchEvent) {
	end := time.Now()
	_, span := o.tracer.Start(ctx, SpanDispatch,
		trace.WithTimestamp(end.Add(-ev.Duration)),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrMethod, ev.Method),
			attribute.String(AttrURL, ev.URL),
			attribute.Int(AttrStatus, ev.Status),
			attribute.String(AttrCategory, ev.Category.String()),
		),
	)
	if ev.Category.Failed() {
		span.SetStatus(codes.Error, ev.Category.String())
	}
	span.End(trace.WithTimestamp(end))

	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, ev.Method),
		attribute.String(AttrCategory, ev.Category.String()),
	)
	o.total.Add(ctx, 1, attrs)
	o.duration.Record(ctx, ev.Duration.Seconds(), attrs)
}
