// Package telemetry installs the OpenTelemetry tracer and meter providers.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gitlab.com/yelinaung/freelance-ledger/internal/config"
	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// metricInterval is how often metrics are exported.
const metricInterval = 30 * time.Second

// ShutdownFunc flushes and stops the installed providers.
type ShutdownFunc func(context.Context) error

// Setup installs global providers for the configured exporter. With the
// "none" exporter the no-op globals are left in place.
func Setup(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	return setup(ctx, cfg, os.Stderr)
}

func setup(ctx context.Context, cfg *config.Config, stdout io.Writer) (ShutdownFunc, error) {
	if cfg.OtelExporter == config.ExporterNone || cfg.OtelExporter == "" {
		return func(context.Context) error { return nil }, nil
	}

	spans, metrics, err := exporters(ctx, cfg, stdout)
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spans),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metrics, sdkmetric.WithInterval(metricInterval))),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Log.Info().
		Str("exporter", cfg.OtelExporter).
		Str("endpoint", cfg.OtelEndpoint).
		Msg("Telemetry enabled")

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

func exporters(ctx context.Context, cfg *config.Config, stdout io.Writer) (sdktrace.SpanExporter, sdkmetric.Exporter, error) {
	switch cfg.OtelExporter {
	case config.ExporterStdout:
		spans, err := stdouttrace.New(stdouttrace.WithWriter(stdout))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
		metrics, err := stdoutmetric.New(stdoutmetric.WithWriter(stdout))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
		return spans, metrics, nil

	case config.ExporterOTLPGRPC:
		traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithInsecure()}
		metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if cfg.OtelEndpoint != "" {
			traceOpts = append(traceOpts, otlptracegrpc.WithEndpoint(cfg.OtelEndpoint))
			metricOpts = append(metricOpts, otlpmetricgrpc.WithEndpoint(cfg.OtelEndpoint))
		}
		spans, err := otlptracegrpc.New(ctx, traceOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP gRPC trace exporter: %w", err)
		}
		metrics, err := otlpmetricgrpc.New(ctx, metricOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP gRPC metric exporter: %w", err)
		}
		return spans, metrics, nil

	case config.ExporterOTLPHTTP:
		traceOpts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
		metricOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if cfg.OtelEndpoint != "" {
			traceOpts = append(traceOpts, otlptracehttp.WithEndpoint(cfg.OtelEndpoint))
			metricOpts = append(metricOpts, otlpmetrichttp.WithEndpoint(cfg.OtelEndpoint))
		}
		spans, err := otlptracehttp.New(ctx, traceOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP HTTP trace exporter: %w", err)
		}
		metrics, err := otlpmetrichttp.New(ctx, metricOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP HTTP metric exporter: %w", err)
		}
		return spans, metrics, nil

	default:
		return nil, nil, fmt.Errorf("unknown telemetry exporter %q", cfg.OtelExporter)
	}
}
