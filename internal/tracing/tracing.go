// Package tracing wraps each pipeline stage and each translation-unit
// worker in an OpenTelemetry span (§4.7.3, §5's "multiple translation
// units may be processed in parallel" model made observable).
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func fileAttr(file string) attribute.KeyValue {
	return attribute.String("occ.file", file)
}

// Tracer is the driver's package-level tracer, mirroring the teacher
// pack's own `observability.Tracer` package variable so call sites read
// `tracing.Tracer.Start(ctx, name)` rather than threading a tracer
// through every function signature.
var Tracer trace.Tracer = otel.Tracer("github.com/occ2swift/occ")

// Setup installs an SDK TracerProvider built from exporter and
// registers it as the global provider, returning a shutdown func the
// caller defers. A nil exporter installs a provider that samples every
// span but drops them on export (used by tests and one-shot CLI runs
// with no collector configured).
func Setup(ctx context.Context, exporter sdktrace.SpanExporter) (shutdown func(context.Context) error, err error) {
	res, err := resource.Merge(resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", "occ")))
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer("github.com/occ2swift/occ")

	return tp.Shutdown, nil
}

// StartStage starts a span for one of the five §4.6 pipeline stages
// (parse, collect-intentions, resolve-types, transform, emit), tagging
// it with the file under translation.
func StartStage(ctx context.Context, stage, file string) (context.Context, trace.Span) {
	return Tracer.Start(ctx, "pipeline."+stage, trace.WithAttributes(
		fileAttr(file),
	))
}

// StartWorker starts a span for one translation-unit worker in the
// driver's bounded worker pool (§5).
func StartWorker(ctx context.Context, file string) (context.Context, trace.Span) {
	return Tracer.Start(ctx, "driver.translationUnit", trace.WithAttributes(
		fileAttr(file),
	))
}
