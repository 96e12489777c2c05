// Package telemetry wires OpenTelemetry tracing for deck and storage operations.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// DefaultServiceName is reported when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "flashdeck"

// tracesPath is appended to endpoint URLs that carry no path.
const tracesPath = "/v1/traces"

// Config selects the OTLP endpoint. Endpoint is either host:port or a URL
// such as http://localhost:4318. Empty fields fall back to the standard
// OTEL_EXPORTER_OTLP_* and OTEL_SERVICE_NAME variables.
type Config struct {
	Endpoint    string
	ServiceName string
	Insecure    bool
}

// ShutdownFunc flushes pending spans and stops the exporter.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a batching OTLP/HTTP tracer provider as the global provider.
// With no endpoint configured it does nothing and tracing stays a no-op.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		return noopShutdown, err
	}
	if provider == nil {
		return noopShutdown, nil // Disabled
	}
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// NewProvider builds the SDK tracer provider, or returns nil when disabled.
func NewProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	opts, enabled, err := exporterOptions(cfg)
	if err != nil || !enabled {
		return nil, err
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(cfg.ServiceName)),
	), nil
}

// exporterOptions maps cfg to exporter options. With no Endpoint the exporter
// reads the OTEL_EXPORTER_OTLP_* variables itself; enabled is false when none is set.
func exporterOptions(cfg Config) (opts []otlptracehttp.Option, enabled bool, err error) {
	switch {
	case strings.Contains(cfg.Endpoint, "://"):
		u, err := url.Parse(cfg.Endpoint)
		if err != nil {
			return nil, false, fmt.Errorf("parse otlp endpoint: %w", err)
		}
		if u.Path == "" || u.Path == "/" {
			u.Path = tracesPath
		}
		opts = append(opts, otlptracehttp.WithEndpointURL(u.String()))
	case cfg.Endpoint != "":
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	case os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" && os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") == "":
		return nil, false, nil
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts, true, nil
}

func newResource(serviceName string) *resource.Resource {
	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) oteltrace.Tracer {
	return otel.Tracer(name)
}
