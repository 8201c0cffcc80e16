package tracer

import (
	"context"
	"log"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const ServiceName = "workflow-hub-backend"

type Options struct {
	Enabled     bool
	Endpoint    string // host:port of an OTLP HTTP collector
	Version     string
	SampleRatio float64 // 1 keeps every trace
}

// OptionsFromEnv reads OTEL_ENABLED, OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_SAMPLE_RATIO.
func OptionsFromEnv(version string) Options {
	opts := Options{
		Enabled:     os.Getenv("OTEL_ENABLED") == "true",
		Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Version:     version,
		SampleRatio: 1,
	}
	if opts.Endpoint == "" {
		opts.Endpoint = "localhost:4318"
	}
	if v, err := strconv.ParseFloat(os.Getenv("OTEL_SAMPLE_RATIO"), 64); err == nil && v >= 0 && v <= 1 {
		opts.SampleRatio = v
	}
	return opts
}

// InitTracer installs the global tracer provider and returns its shutdown func.
// A disabled or failing exporter yields a no-op shutdown.
func InitTracer(opts Options) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	if !opts.Enabled {
		log.Println("OpenTelemetry tracing is disabled (set OTEL_ENABLED=true to enable)")
		return noop
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Printf("Warning: Failed to create OTLP exporter: %v (tracing disabled)", err)
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceVersionKey.String(opts.Version),
		)),
	)

	otel.SetTracerProvider(tp)
	log.Printf("✅ OpenTelemetry tracer initialized (endpoint: %s, ratio: %.2f)", opts.Endpoint, opts.SampleRatio)

	return tp.Shutdown
}
