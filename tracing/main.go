package tracing

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/overmindtech/cache-discovery"

// the following vars will be set during the build using `ldflags`, eg:
//
//	go build -ldflags "-X github.com/overmindtech/cache-discovery/tracing.version=$VERSION" -o cache-discovery
var (
	version = "dev"
	commit  = "none"
)

// Tracer returns a tracer from the current global provider
func Tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(
		instrumentationName,
		trace.WithInstrumentationVersion(version),
		trace.WithInstrumentationAttributes(
			attribute.String("build.commit", commit),
		),
		trace.WithSchemaURL(semconv.SchemaURL),
	)
}

func tracingResource(component string) *resource.Resource {
	hostRes, err := resource.New(context.Background(),
		resource.WithHost(),
		resource.WithOS(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		log.WithError(err).Error("error initialising host resource")
		return nil
	}

	localRes := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(component),
		semconv.ServiceVersionKey.String(version),
		attribute.String("build.commit", commit),
	)

	res, err := resource.Merge(hostRes, localRes)
	if err != nil {
		log.WithError(err).Error("error merging resource")
		return nil
	}
	return res
}

var tp *sdktrace.TracerProvider

// Config selects where spans and errors are sent
type Config struct {
	// Component is used as the service name
	Component       string
	HoneycombAPIKey string
	SentryDSN       string
	// RunMode "release" reports to the prod sentry environment, anything
	// else to dev
	RunMode string
	// StdoutDump pretty-prints every span to stdout
	StdoutDump bool
}

func (c Config) environment() string {
	if c.RunMode == "release" {
		return "prod"
	}
	return "dev"
}

// Init sets up sentry when a DSN is given and installs a tracer provider when
// there is somewhere to export to. Otherwise spans stay no-ops.
func Init(cfg Config, opts ...otlptracehttp.Option) error {
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			AttachStacktrace: true,
			EnableTracing:    false,
			Environment:      cfg.environment(),
		})
		if err != nil {
			log.WithError(err).Error("Could not initialise sentry")
		}
		log.Trace("sentry configured")
	}

	if cfg.HoneycombAPIKey != "" {
		opts = append(opts,
			otlptracehttp.WithEndpoint("api.honeycomb.io"),
			otlptracehttp.WithHeaders(map[string]string{"x-honeycomb-team": cfg.HoneycombAPIKey}),
		)
	}

	if len(opts) == 0 && !cfg.StdoutDump {
		return nil
	}

	provider, err := newProvider(cfg, opts)
	if err != nil {
		return err
	}

	tp = provider
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return nil
}

func newProvider(cfg Config, opts []otlptracehttp.Option) (*sdktrace.TracerProvider, error) {
	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(tracingResource(cfg.Component)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	}

	if len(opts) > 0 {
		exp, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(opts...))
		if err != nil {
			return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
		}
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exp))
	}

	if cfg.StdoutDump {
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("creating stdout trace exporter: %w", err)
		}
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exp))
	}

	return sdktrace.NewTracerProvider(providerOpts...), nil
}

const shutdownTimeout = 5 * time.Second

// Shutdown flushes sentry and the tracer provider. It does not wait longer
// than a few seconds even when ctx is already cancelled.
func Shutdown(ctx context.Context) {
	defer sentry.Flush(shutdownTimeout)

	if tp == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	// Shutdown flushes pending spans itself
	if err := tp.Shutdown(ctx); err != nil {
		log.WithContext(ctx).WithError(err).Error("Could not shut down tracer provider")
	}
	tp = nil
}

// Version returns the version baked into the binary at build time.
func Version() string {
	return version
}
