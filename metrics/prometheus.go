// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Prometheus is a meter provider backed by a private Prometheus registry.
type Prometheus struct {
	registry *promclient.Registry
	provider *sdkmetric.MeterProvider
}

// NewPrometheusProvider creates a meter provider exporting to a new
// Prometheus registry. The global registry is never touched, so several
// providers can coexist in one process.
//
// Example:
//
//	prom, err := metrics.NewPrometheusProvider()
//	...
//	in := metrics.MustNew(metrics.WithMeterProvider(prom.MeterProvider()))
//	defer prom.Shutdown(context.Background())
func NewPrometheusProvider() (*Prometheus, error) {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	return &Prometheus{
		registry: registry,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
	}, nil
}

// MeterProvider returns the provider to pass to [WithMeterProvider].
func (p *Prometheus) MeterProvider() metric.MeterProvider {
	return p.provider
}

// Registry returns the Prometheus registry metrics are exported to.
func (p *Prometheus) Registry() *promclient.Registry {
	return p.registry
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// WriteText gathers the registry and writes it to w in the Prometheus text format.
func (p *Prometheus) WriteText(w io.Writer) error {
	families, err := p.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

// Shutdown flushes and stops the meter provider.
func (p *Prometheus) Shutdown(ctx context.Context) error {
	return p.provider.Shutdown(ctx)
}
