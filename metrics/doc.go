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

// Package metrics instruments route matchers with OpenTelemetry metrics.
//
// The trie and compiler packages do no I/O and record nothing. Metrics are
// opt-in: wrap a matcher with an [Instrument] where they are wanted.
//
//	in := metrics.MustNew(metrics.WithMatcherName("api"))
//	lookup := metrics.WrapTree(in, tree)
//	m, ok := lookup("GET", "/users/42")
//
// # Global State
//
// Without [WithMeterProvider] the global OpenTelemetry meter provider is
// used. This package never sets the global provider.
//
// # Prometheus
//
// [NewPrometheusProvider] builds a meter provider exporting to a private
// Prometheus registry, served with [Prometheus.Handler] or dumped with
// [Prometheus.WriteText].
package metrics
