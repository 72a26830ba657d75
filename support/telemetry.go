package support

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

func ConsoleExporter() (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func HoneycombExporter(ctx context.Context, team string, dataset string) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint("api.honeycomb.io:443"),
		otlptracegrpc.WithHeaders(map[string]string{
			"x-honeycomb-team":    team,
			"x-honeycomb-dataset": dataset,
		}),
		otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")),
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(ctx, client)
}

func JaegerExporter(endpoint string) (*jaeger.Exporter, error) {
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
}

// SpanExporter selects an exporter from TALLY_TRACE_EXPORTER: "console"
// (default), "jaeger", or "honeycomb". Honeycomb credentials come from
// HONEYCOMB_TEAM and HONEYCOMB_DATASET.
func SpanExporter(ctx context.Context) (trace.SpanExporter, error) {
	switch kind := os.Getenv("TALLY_TRACE_EXPORTER"); kind {
	case "", "console":
		return ConsoleExporter()
	case "jaeger":
		return JaegerExporter("http://localhost:14268/api/traces")
	case "honeycomb":
		return HoneycombExporter(ctx, os.Getenv("HONEYCOMB_TEAM"), os.Getenv("HONEYCOMB_DATASET"))
	default:
		return nil, fmt.Errorf("unknown trace exporter: %s", kind)
	}
}
