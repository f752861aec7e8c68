package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/settings"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

var (
	mu sync.Mutex
	tp *sdktrace.TracerProvider
)

// InitTracer installs a global tracer provider exporting to the configured
// OTLP collector. It does nothing when tracing is disabled or a provider is
// already installed.
func InitTracer(tSettings *settings.Settings) error {
	if !tSettings.Tracing.Enabled {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if tp != nil {
		return nil
	}

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(tSettings.Tracing.CollectorEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return errors.NewConfigurationError("failed to create OTLP exporter", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(tSettings.ServiceName),
			semconv.ServiceVersionKey.String(tSettings.Version),
		),
	)
	if err != nil {
		return errors.NewConfigurationError("failed to create resource", err)
	}

	tp = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(time.Second)),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(tSettings.Tracing.SampleRate)),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return nil
}

// ShutdownTracer flushes and stops the provider installed by InitTracer.
func ShutdownTracer(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if tp == nil {
		return nil
	}

	if err := tp.Shutdown(ctx); err != nil {
		return errors.NewProcessingError("failed to shutdown tracer", err)
	}

	tp = nil

	return nil
}
