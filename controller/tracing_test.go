package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"gumpkit/gumpid"
	"gumpkit/host/memhost"
	"gumpkit/internal/tracer"
)

func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exp := tracetest.NewInMemoryExporter()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return exp
}

func spanAttr(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestPresentNamedTagsSpanWithName(t *testing.T) {
	exp := recordSpans(t)
	c, h := newController(t)
	id := gumpid.Sum("spells")
	h.Queue(id, memhost.Press(4))

	_, err := c.PresentNamed(context.Background(), " spells", spellPicker(), at, time.Second)
	require.NoError(t, err)
	_, err = c.Present(context.Background(), 9, spellPicker(), at, 10*time.Millisecond)
	require.NoError(t, err)

	spans := exp.GetSpans()
	require.Len(t, spans, 2)
	name, ok := spanAttr(spans[0].Attributes, tracer.KeyName)
	require.True(t, ok)
	assert.Equal(t, "spells", name.AsString())
	button, ok := spanAttr(spans[0].Attributes, tracer.KeyButton)
	require.True(t, ok)
	assert.Equal(t, int64(4), button.AsInt64())

	_, ok = spanAttr(spans[1].Attributes, tracer.KeyName)
	assert.False(t, ok)
	require.Len(t, spans[1].Events, 1)
	assert.Equal(t, "expired", spans[1].Events[0].Name)
}
