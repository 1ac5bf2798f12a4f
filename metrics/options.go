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
	"go.opentelemetry.io/otel/metric"
)

// DefaultMatcherName is the value of the matcher attribute when
// [WithMatcherName] is not used.
const DefaultMatcherName = "default"

// defaultDurationBuckets are lookup latency bucket boundaries in seconds.
// Route lookups run in the sub-microsecond to tens-of-microseconds range.
var defaultDurationBuckets = []float64{
	0.0000001, 0.00000025, 0.0000005,
	0.000001, 0.0000025, 0.000005,
	0.00001, 0.000025, 0.00005,
	0.0001, 0.001,
}

// Option configures an [Instrument].
type Option func(*Instrument)

// WithMeterProvider sets the meter provider instruments are created from.
// Without it the global OpenTelemetry meter provider is used.
//
// Example:
//
//	reader := sdkmetric.NewManualReader()
//	in := metrics.MustNew(metrics.WithMeterProvider(
//	    sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
//	))
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(in *Instrument) {
		in.meterProvider = mp
		in.customProvider = true
	}
}

// WithMatcherName sets the "pathtrie.matcher" attribute, which tells apart
// several route tables reporting through the same provider.
func WithMatcherName(name string) Option {
	return func(in *Instrument) {
		in.name = name
	}
}

// WithDurationBuckets sets the lookup latency histogram boundaries, in seconds.
func WithDurationBuckets(buckets ...float64) Option {
	return func(in *Instrument) {
		in.durationBuckets = buckets
	}
}
