// Package tracer records dialog flows as OpenTelemetry spans. Nothing is
// exported unless tracing is enabled in the config.
package tracer

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"gumpkit/config"
)

const scope = "gumpkit/controller"

// Span attribute keys.
const (
	KeyDialog = attribute.Key("gump.id")
	KeyName   = attribute.Key("gump.name")
	KeyButton = attribute.Key("gump.button")
)

// Setup installs the global provider named by cfg and returns the func
// that flushes it.
func Setup(ctx context.Context, cfg config.TracerConfig) (func(context.Context) error, error) {
	return setup(cfg, os.Stdout)
}

func setup(cfg config.TracerConfig, w io.Writer) (func(context.Context) error, error) {
	exporter, err := newExporter(cfg, w)
	if err != nil {
		return nil, err
	}
	if exporter == nil {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// newExporter returns nil when spans should be dropped.
func newExporter(cfg config.TracerConfig, w io.Writer) (sdktrace.SpanExporter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Exporter {
	case "", "noop":
		return nil, nil
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("stdout exporter: %w", err)
		}
		return exp, nil
	}
	return nil, fmt.Errorf("tracer: unknown exporter %q", cfg.Exporter)
}

// StartDialog opens the span for one operation on dialog id. name is the
// allocated dialog name, empty for literal ids.
func StartDialog(ctx context.Context, op string, id uint32, name string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{KeyDialog.Int64(int64(id))}
	if name != "" {
		attrs = append(attrs, KeyName.String(name))
	}
	return otel.Tracer(scope).Start(ctx, "gump."+op, trace.WithAttributes(attrs...))
}

// End sets the span status from err and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
