// Package telemetry records service metrics through OpenTelemetry and
// exports them over OTLP/gRPC.
package telemetry

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "palette-api"
	serviceVersion = "1.0.0"
)

// Config holds OTLP exporter settings.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// Recorder is what the service reports to.
type Recorder interface {
	RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration)
	RecordGenerated(ctx context.Context, kind string, colors int)
	RecordSwept(ctx context.Context, sessions int64)
	Close(ctx context.Context) error
}

// New returns an OTLP-backed recorder, or a no-op one when export is
// disabled or the exporter cannot be created.
func New(ctx context.Context, cfg Config) Recorder {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return NoOpRecorder{}
	}
	rec, err := NewExporter(ctx, cfg)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
		return NoOpRecorder{}
	}
	return rec
}

// MetricsRecorder records to an OpenTelemetry meter provider.
type MetricsRecorder struct {
	provider  *sdkmetric.MeterProvider
	requests  metric.Int64Counter
	latency   metric.Float64Histogram
	generated metric.Int64Counter
	swept     metric.Int64Counter
}

// NewExporter creates a recorder that pushes to an OTEL collector.
func NewExporter(ctx context.Context, cfg Config) (*MetricsRecorder, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return NewMetricsRecorder(provider)
}

// NewMetricsRecorder registers the service instruments on provider.
func NewMetricsRecorder(provider *sdkmetric.MeterProvider) (*MetricsRecorder, error) {
	meter := provider.Meter(serviceName)

	requests, err := meter.Int64Counter(
		"palette_http_requests_total",
		metric.WithDescription("HTTP requests served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}

	latency, err := meter.Float64Histogram(
		"palette_http_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating latency histogram: %w", err)
	}

	generated, err := meter.Int64Counter(
		"palette_colors_generated_total",
		metric.WithDescription("Colors produced by the generators"),
		metric.WithUnit("{color}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating generated counter: %w", err)
	}

	swept, err := meter.Int64Counter(
		"palette_history_sessions_swept_total",
		metric.WithDescription("Expired history sessions removed"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating swept counter: %w", err)
	}

	return &MetricsRecorder{
		provider:  provider,
		requests:  requests,
		latency:   latency,
		generated: generated,
		swept:     swept,
	}, nil
}

func (m *MetricsRecorder) RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.requests.Add(ctx, 1, opt)
	m.latency.Record(ctx, elapsed.Seconds(), opt)
}

func (m *MetricsRecorder) RecordGenerated(ctx context.Context, kind string, colors int) {
	m.generated.Add(ctx, int64(colors), metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *MetricsRecorder) RecordSwept(ctx context.Context, sessions int64) {
	m.swept.Add(ctx, sessions)
}

// Close flushes pending metrics and shuts the provider down.
func (m *MetricsRecorder) Close(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

// NoOpRecorder discards everything.
type NoOpRecorder struct{}

func (NoOpRecorder) RecordRequest(context.Context, string, string, int, time.Duration) {}
func (NoOpRecorder) RecordGenerated(context.Context, string, int)                      {}
func (NoOpRecorder) RecordSwept(context.Context, int64)                                {}
func (NoOpRecorder) Close(context.Context) error                                       { return nil }
