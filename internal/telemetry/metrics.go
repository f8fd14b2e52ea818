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

package telemetry

import (
	"context"
	"fmt"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/crossfi-tickets/ticketgate/internal/config"
)

// prometheusNewFn is swapped in tests to simulate exporter errors.
var prometheusNewFn = prometheus.New

// DefaultMetricsPath is the default HTTP path for the Prometheus scrape endpoint.
const DefaultMetricsPath = "/metrics"

// Metrics is an installed meter provider with its scrape endpoint.
type Metrics struct {
	// Handler serves the Prometheus exposition format.
	Handler http.Handler
	// Path is the route the handler is mounted on.
	Path string
	// Meter records the access decision and ledger call instruments.
	Meter metric.Meter

	provider *sdkmetric.MeterProvider
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(
	ctx context.Context,
) error {
	return m.provider.Shutdown(ctx)
}

// InitMeter installs a meter provider exporting to a private Prometheus
// registry that also carries the Go runtime and process collectors.
func InitMeter(
	cfg config.MetricsConfig,
) (*Metrics, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultMetricsPath
	}

	registry := prom.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := prometheusNewFn(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(mp)

	return &Metrics{
		Handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Path:     path,
		Meter:    mp.Meter(InstrumentationName),
		provider: mp,
	}, nil
}
