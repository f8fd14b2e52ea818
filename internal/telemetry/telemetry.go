// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package telemetry provides OpenTelemetry tracing initialization and helpers.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/crossfi-tickets/ticketgate/internal/config"
)

// ServiceName identifies this service in traces and metrics.
const ServiceName = "ticketgate"

// InstrumentationName scopes the tracer and meter of this module.
const InstrumentationName = "github.com/crossfi-tickets/ticketgate"

// Tracer returns the module tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// InitTracer installs the global tracer provider and the W3C TraceContext
// propagator. A disabled config installs a noop provider. The returned
// shutdown flushes pending spans.
func InitTracer(
	ctx context.Context,
	serviceName string,
	cfg config.TracingConfig,
) (func(context.Context) error, error) {
	// Always set the W3C propagator so inject/extract works
	otel.SetTextMapPropagator(propagation.TraceContext{})

	if !cfg.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())

		return func(_ context.Context) error { return nil }, nil
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
	}

	// Without an exporter spans still carry ids for log correlation.
	switch cfg.Exporter {
	case "", "none":
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}

		opts = append(opts, sdktrace.WithBatcher(exp))
	case "otlp":
		exp, err := otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("creating OTLP exporter: %w", err)
		}

		opts = append(opts, sdktrace.WithBatcher(exp))
	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %q", cfg.Exporter)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Providers holds the installed telemetry providers.
type Providers struct {
	// Metrics is the Prometheus scrape endpoint and module meter.
	Metrics *Metrics

	shutdownTracer func(context.Context) error
}

// Init installs tracing and metrics from cfg.
func Init(
	ctx context.Context,
	cfg config.Telemetry,
) (*Providers, error) {
	shutdownTracer, err := InitTracer(ctx, ServiceName, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initializing tracer: %w", err)
	}

	metrics, err := InitMeter(cfg.Metrics)
	if err != nil {
		_ = shutdownTracer(ctx)
		return nil, fmt.Errorf("initializing meter: %w", err)
	}

	return &Providers{
		Metrics:        metrics,
		shutdownTracer: shutdownTracer,
	}, nil
}

// Shutdown flushes and stops both providers.
func (p *Providers) Shutdown(
	ctx context.Context,
) error {
	return errors.Join(
		p.shutdownTracer(ctx),
		p.Metrics.Shutdown(ctx),
	)
}
