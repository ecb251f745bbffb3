// Package otel installs the process-wide tracer provider used by the
// scorer's HTTP, gRPC and CLI spans.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/xtding233/bowling-backend/internal/platform/config"
)

const serviceNamespace = "bowling"

// Settings control trace export. They are read from BOWLING_OTEL_*.
type Settings struct {
	Endpoint    string  `env:"OTEL_ENDPOINT"`
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"true"`
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Active reports whether spans should be exported at all.
func (s Settings) Active() bool { return s.Enabled && s.Endpoint != "" }

// Shutdown flushes and stops the provider installed by Setup.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// Setup reads Settings from the environment and installs an OTLP/HTTP tracer
// provider for service. Without an endpoint nothing is installed and the
// returned Shutdown does nothing.
func Setup(ctx context.Context, service string) (Shutdown, error) {
	var s Settings
	if err := config.ParseEnv(&s); err != nil {
		return noop, err
	}
	return Install(ctx, service, s)
}

// Install is Setup with explicit settings.
func Install(ctx context.Context, service string, s Settings) (Shutdown, error) {
	if !s.Active() {
		return noop, nil
	}
	if s.SampleRatio < 0 || s.SampleRatio > 1 {
		return noop, fmt.Errorf("otel sample ratio %v outside [0,1]", s.SampleRatio)
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(s.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(service),
		semconv.ServiceNamespace(serviceNamespace),
	))
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown, nil
}
