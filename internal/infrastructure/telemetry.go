package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Telemetry owns the tracer and meter used across the API. With telemetry
// disabled both come from the global noop providers and Shutdown does nothing.
type Telemetry struct {
	Tracer trace.Tracer
	Meter  metric.Meter

	shutdowns []func(context.Context) error
	logger    *zap.Logger
}

// TelemetryMetrics are the instruments recorded by middleware, services and
// the exercise importer
type TelemetryMetrics struct {
	HTTPRequestDuration metric.Float64Histogram
	HTTPRequestCount    metric.Int64Counter
	ExercisesImported   metric.Int64Counter
	ProgressUpserts     metric.Int64Counter
	LessonsCompleted    metric.Int64Counter
}

// NewTelemetry wires OTLP trace export and a Prometheus metric reader.
// Metrics are served by the /metrics handler through the default registry.
func NewTelemetry(ctx context.Context, config *TelemetryConfig, environment string, logger *zap.Logger) (*Telemetry, error) {
	t := &Telemetry{logger: logger}

	if !config.Enabled {
		logger.Info("Telemetry disabled, spans and instruments are noop")
		t.Tracer = otel.Tracer(config.ServiceName)
		t.Meter = otel.Meter(config.ServiceName)
		return t, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
		semconv.DeploymentEnvironment(environment),
		attribute.String("app.domain", "dsa-study"),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	tracerProvider, err := newTracerProvider(ctx, config, res)
	if err != nil {
		return nil, err
	}
	t.shutdowns = append(t.shutdowns, tracerProvider.Shutdown)

	meterProvider, err := newMeterProvider(res)
	if err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return nil, err
	}
	t.shutdowns = append(t.shutdowns, meterProvider.Shutdown)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Tracer = tracerProvider.Tracer(config.ServiceName)
	t.Meter = meterProvider.Meter(config.ServiceName)

	logger.Info("Telemetry initialized",
		zap.String("otlp_endpoint", config.OTLPEndpoint),
		zap.Float64("sample_ratio", config.SampleRatio),
	)
	return t, nil
}

func newTracerProvider(ctx context.Context, config *TelemetryConfig, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(config.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(config.SampleRatio))),
	), nil
}

func newMeterProvider(res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	// Import runs and progress writes are fast; the default HTTP buckets start too high
	latencyView := sdkmetric.NewView(
		sdkmetric.Instrument{Name: "http.request.duration"},
		sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
			Boundaries: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}},
	)

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
		sdkmetric.WithView(latencyView),
	), nil
}

// CreateMetrics registers the application instruments on the telemetry meter
func (t *Telemetry) CreateMetrics() (*TelemetryMetrics, error) {
	return NewTelemetryMetrics(t.Meter)
}

// NewTelemetryMetrics registers the application instruments on meter
func NewTelemetryMetrics(meter metric.Meter) (*TelemetryMetrics, error) {
	var (
		m   TelemetryMetrics
		err error
	)

	m.HTTPRequestDuration, err = meter.Float64Histogram("http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
	}{
		{&m.HTTPRequestCount, "http.request.count", "Total number of HTTP requests"},
		{&m.ExercisesImported, "exercises.imported", "Lesson exercises inserted as problems"},
		{&m.ProgressUpserts, "progress.upserts", "Progress writes accepted"},
		{&m.LessonsCompleted, "lessons.completed", "Lessons marked complete for the first time"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.description))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
		*c.target = counter
	}

	return &m, nil
}

// Shutdown flushes pending spans and stops the providers, newest first
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		if err := t.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		t.logger.Error("Telemetry shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
