package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ai-trader"

var (
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	enabled        bool
)

// Config selects where spans go and how many are kept.
type Config struct {
	Enabled bool
	// Output receives pretty-printed spans. Stdout carries CLI results, so the
	// default is stderr.
	Output io.Writer
	// SampleRatio in (0,1]; anything else keeps every trace.
	SampleRatio float64
}

// LoadConfigFromEnv reads LOG_TRACING_ENABLED, LOG_TRACE_FILE and LOG_TRACE_SAMPLE_RATIO.
func LoadConfigFromEnv() (Config, error) {
	cfg := Config{
		Enabled:     getEnv("LOG_TRACING_ENABLED", "false") == "true",
		Output:      os.Stderr,
		SampleRatio: 1,
	}
	if !cfg.Enabled {
		return cfg, nil
	}
	if path := os.Getenv("LOG_TRACE_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return cfg, fmt.Errorf("failed to open trace file: %w", err)
		}
		cfg.Output = f
	}
	if v := os.Getenv("LOG_TRACE_SAMPLE_RATIO"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid LOG_TRACE_SAMPLE_RATIO %q: %w", v, err)
		}
		cfg.SampleRatio = ratio
	}
	return cfg, nil
}

// Init installs a span exporter when LOG_TRACING_ENABLED is "true".
// Tracing is off by default; spans are pretty-printed and noisy.
func Init(version string) error {
	cfg, err := LoadConfigFromEnv()
	if err != nil {
		return err
	}
	return InitWithConfig(version, cfg)
}

func InitWithConfig(version string, cfg Config) error {
	enabled = cfg.Enabled
	if !enabled {
		return nil
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(cfg.Output), stdouttrace.WithPrettyPrint())
	if err != nil {
		enabled = false
		return err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		enabled = false
		return err
	}

	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRatio > 0 && cfg.SampleRatio < 1 {
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRatio)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = otel.Tracer(serviceName)
	return nil
}

// Shutdown flushes pending spans.
func Shutdown(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}
	err := tracerProvider.Shutdown(ctx)
	tracerProvider = nil
	tracer = nil
	enabled = false
	return err
}

// StartSpan returns a child span, or the span already in ctx when tracing is disabled.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, spanName, opts...)
}

func Enabled() bool {
	return enabled
}

func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !enabled {
		return "", "", false
	}
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return "", "", false
	}
	return span.SpanContext().TraceID().String(),
		span.SpanContext().SpanID().String(),
		true
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
