package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/awantoch/kwanixflow/config"
	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultOTLPEndpoint = "http://localhost:4318"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kwanixflow_http_requests_total",
			Help: "Total number of HTTP requests received.",
		},
		[]string{"handler", "method", "code"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kwanixflow_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)
	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kwanixflow_events_total",
			Help: "Diagram events observed on the event bus, by topic.",
		},
		[]string{"topic"},
	)
	previewsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kwanixflow_previews_total",
			Help: "Number of previews generated.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, eventsTotal, previewsTotal)
}

// Shutdown flushes and stops the tracer provider.
type Shutdown func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init sets up the tracing exporter based on config.
// Supported exporters: "none" (default), "stdout", "otlp".
func Init(cfg *config.Config) (Shutdown, error) {
	if cfg == nil {
		return noopShutdown, nil
	}
	tc := cfg.Tracing
	if tc.Exporter == "" || tc.Exporter == constants.TracingExporterNone {
		return noopShutdown, nil
	}
	serviceName := constants.ServiceName
	if tc.ServiceName != "" {
		serviceName = tc.ServiceName
	}
	ctx := context.Background()
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, fmt.Errorf("tracing resource: %w", err)
	}

	var exp sdktrace.SpanExporter
	switch tc.Exporter {
	case constants.TracingExporterStdout:
		exp, err = stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	case constants.TracingExporterOTLP:
		endpoint := tc.Endpoint
		if endpoint == "" {
			endpoint = defaultOTLPEndpoint
		}
		exp, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %s", tc.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("tracing exporter %s: %w", tc.Exporter, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// WrapHandler applies tracing, Prometheus metrics, and otelhttp middleware.
func WrapHandler(name string, next http.Handler) http.Handler {
	h := otelhttp.NewHandler(next, name)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rw, r)
		httpRequestsTotal.WithLabelValues(name, r.Method, fmt.Sprintf("%d", rw.status)).Inc()
		httpRequestDuration.WithLabelValues(name, r.Method).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsHandler returns the Prometheus metrics endpoint handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordPreview counts one generated preview.
func RecordPreview() {
	previewsTotal.Inc()
}

// CountEvents subscribes to every diagram topic and counts deliveries until
// ctx is done.
func CountEvents(ctx context.Context, bus event.EventBus) error {
	return event.SubscribeAll(ctx, bus, func(topic string, _ map[string]any) {
		eventsTotal.WithLabelValues(topic).Inc()
	})
}
