// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false, ServiceName: "test"})
	require.NoError(t, err)
	assert.Nil(t, provider.tp)
	assert.NoError(t, provider.Shutdown(context.Background()))

	_, span := otel.Tracer("test").Start(context.Background(), "noop-check")
	assert.False(t, span.IsRecording())
	span.End()
}

func TestNewProviderInvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, ServiceName: "test", ExporterType: "invalid"})
	assert.EqualError(t, err, "unsupported exporter type: invalid (supported: grpc, http)")
}

func TestNewProviderExportsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	provider, err := NewProvider(context.Background(), Config{
		Enabled:      true,
		ServiceName:  "readerpulse-test",
		SamplingRate: 1,
		exporter:     exp,
	})
	require.NoError(t, err)

	_, span := Tracer("test").Start(context.Background(), "content.serve")
	span.SetAttributes(AccessAttributes("post-1", "premium", "free", false, 4)...)
	span.End()
	require.NoError(t, provider.tp.ForceFlush(context.Background()))

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "content.serve", spans[0].Name)
	assert.Contains(t, spans[0].Attributes, attribute.Bool(AccessFullKey, false))

	require.NoError(t, provider.Shutdown(context.Background()))
	otel.SetTracerProvider(noop.NewTracerProvider())
}

func TestSamplerBounds(t *testing.T) {
	assert.Contains(t, sampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, sampler(0.5).Description(), "TraceIDRatioBased")
}

func TestHTTPAttributes(t *testing.T) {
	attrs := HTTPAttributes("GET", "/api/v1/content/{id}", "/api/v1/content/x", 200)
	assert.Contains(t, attrs, attribute.Int(HTTPStatusCodeKey, 200))
	assert.Len(t, IngestAttributes(2, 1), 2)
}
