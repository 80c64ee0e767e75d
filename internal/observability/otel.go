package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"google.golang.org/grpc/credentials"

	"github.com/tbourn/go-taxcode-search/internal/config"
)

// BuildInfo identifies the running binary and the catalog it serves. It is
// attached to every exported span as resource attributes.
type BuildInfo struct {
	Version        string // binary version
	CatalogVersion string // services.CatalogService.Version(); may be empty
	CatalogStore   string // sqlite|memory
}

func (b BuildInfo) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceVersion(b.Version)}
	if b.CatalogVersion != "" {
		attrs = append(attrs, attribute.String("taxsearch.catalog.version", b.CatalogVersion))
	}
	if b.CatalogStore != "" {
		attrs = append(attrs, attribute.String("taxsearch.catalog.store", b.CatalogStore))
	}
	return attrs
}

// Test seams.
var (
	newOTLPClient = otlptracegrpc.NewClient

	newOTLPExporterFn = func(ctx context.Context, client otlptrace.Client) (*otlptrace.Exporter, error) {
		return otlptrace.New(ctx, client)
	}

	newServiceResourceFn = func(ctx context.Context, serviceName string, info BuildInfo) (*resource.Resource, error) {
		attrs := append([]attribute.KeyValue{semconv.ServiceName(serviceName)}, info.attributes()...)
		return resource.New(ctx, resource.WithAttributes(attrs...))
	}
)

// clientOptions builds the OTLP gRPC options for cfg.
func clientOptions(cfg config.OTELConfig) []otlptracegrpc.Option {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		return append(opts, otlptracegrpc.WithInsecure())
	}
	return append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
}

// SetupOTel configures OpenTelemetry tracing and returns a shutdown function.
// When tracing is disabled the returned shutdown is a no-op and the global
// provider is left untouched, so spans opened by the services are discarded.
func SetupOTel(ctx context.Context, cfg config.OTELConfig, info BuildInfo) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := newOTLPExporterFn(ctx, newOTLPClient(clientOptions(cfg)...))
	if err != nil {
		return nil, err
	}

	res, err := newServiceResourceFn(ctx, cfg.ServiceName, info)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
