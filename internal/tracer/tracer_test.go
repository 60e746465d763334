package tracer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"gumpkit/config"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracerConfig{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, span := StartDialog(context.Background(), "present", 1, "")
	assert.False(t, span.SpanContext().IsValid())
	End(span, errors.New("boom"))
}

func TestSetupUnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), config.TracerConfig{Enabled: true, Exporter: "zipkin"})
	assert.ErrorContains(t, err, "zipkin")
}

func TestSetupStdoutWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := setup(config.TracerConfig{Enabled: true, Exporter: "stdout"}, &buf)
	require.NoError(t, err)
	_, span := StartDialog(context.Background(), "present", 0x10, "picker")
	assert.True(t, span.SpanContext().IsValid())
	End(span, nil)
	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "gump.present")
	assert.Contains(t, buf.String(), "picker")

	_, err = Setup(context.Background(), config.TracerConfig{})
	require.NoError(t, err)
}

func TestDialogSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartDialog(context.Background(), "present", 7, "Spells_picker/picker")
	End(span, nil)
	_, span = StartDialog(context.Background(), "redraw", 8, "")
	End(span, errors.New("send failed"))

	spans := exp.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "gump.present", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.ElementsMatch(t, []attribute.KeyValue{
		KeyDialog.Int64(7),
		KeyName.String("Spells_picker/picker"),
	}, spans[0].Attributes)

	assert.Equal(t, "gump.redraw", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, []attribute.KeyValue{KeyDialog.Int64(8)}, spans[1].Attributes)
	require.Len(t, spans[1].Events, 1)
}
