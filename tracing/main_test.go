package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingResource(t *testing.T) {
	resource := tracingResource("test-component")
	require.NotNil(t, resource, "Could not initialize tracing resource. Check the log!")

	name, ok := resource.Set().Value("service.name")
	assert.True(t, ok)
	assert.Equal(t, "test-component", name.AsString())
}

func TestInitWithoutUpstreamsIsNoop(t *testing.T) {
	tp = nil
	require.NoError(t, Init(Config{Component: "test-component"}))
	assert.Nil(t, tp)

	// shutting down without a provider must not fail or block
	Shutdown(context.Background())
}

func TestInitStdoutDump(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	require.NoError(t, Init(Config{Component: "test-component", StdoutDump: true}))
	require.NotNil(t, tp)
	assert.Same(t, tp, otel.GetTracerProvider())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	Shutdown(ctx)
	assert.Nil(t, tp)
}

func TestConfigEnvironment(t *testing.T) {
	assert.Equal(t, "prod", Config{RunMode: "release"}.environment())
	assert.Equal(t, "dev", Config{RunMode: "debug"}.environment())
	assert.Equal(t, "dev", Config{}.environment())
}

func TestTracerUsesGlobalProvider(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)

	_, span := Tracer().Start(context.Background(), "test-span")
	span.SetAttributes(attribute.String("ovm.test", "yes"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "test-span", ended[0].Name())
	assert.Equal(t, instrumentationName, ended[0].InstrumentationScope().Name)
}
