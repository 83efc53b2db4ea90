package commands

import (
	"context"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// slogSpanExporter writes finished spans to the operational log at debug
// level.
type slogSpanExporter struct {
	logger *slog.Logger
}

func (e *slogSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		attrs := []any{
			"trace_id", span.SpanContext().TraceID().String(),
			"duration", span.EndTime().Sub(span.StartTime()),
		}
		for _, kv := range span.Attributes() {
			attrs = append(attrs, string(kv.Key), kv.Value.Emit())
		}
		e.logger.DebugContext(ctx, "span "+span.Name(), attrs...)
	}
	return nil
}

func (e *slogSpanExporter) Shutdown(context.Context) error {
	return nil
}

// newTracerProvider returns a provider exporting every span to logger.
func newTracerProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(&slogSpanExporter{logger: logger}),
	)
}
