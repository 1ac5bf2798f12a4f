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
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/pathtrie/compiler"
	"rivaas.dev/pathtrie/trie"
)

// Metric names.
const (
	LookupsMetric  = "pathtrie.lookups"
	DurationMetric = "pathtrie.lookup.duration"
	RoutesMetric   = "pathtrie.routes"
)

// Attribute keys.
const (
	MatcherKey = attribute.Key("pathtrie.matcher")
	ModeKey    = attribute.Key("pathtrie.mode")
	ResultKey  = attribute.Key("pathtrie.result")
	MethodKey  = attribute.Key("http.request.method")
)

// Mode tells which kind of matcher served a lookup.
type Mode string

const (
	// ModeInterpreted is a lookup served by walking the trie.
	ModeInterpreted Mode = "interpreted"
	// ModeCompiled is a lookup served by a compiled routine.
	ModeCompiled Mode = "compiled"
)

const (
	resultHit  = "hit"
	resultMiss = "miss"
)

const scopeName = "rivaas.dev/pathtrie"

var bgCtx = context.Background()

// Instrument records lookup metrics for route matchers:
//   - pathtrie.lookups: lookups by matcher, mode, method and result (hit or miss)
//   - pathtrie.lookup.duration: lookup latency in seconds
//   - pathtrie.routes: registered routes per matcher
//
// Thread-safety: an Instrument and the matchers it wraps are safe for
// concurrent use.
type Instrument struct {
	name            string
	meterProvider   metric.MeterProvider
	customProvider  bool
	durationBuckets []float64

	lookups  metric.Int64Counter
	duration metric.Float64Histogram
	routes   metric.Int64Gauge

	matcherAttr attribute.KeyValue
}

// New creates an Instrument.
func New(opts ...Option) (*Instrument, error) {
	in := &Instrument{
		name:            DefaultMatcherName,
		durationBuckets: defaultDurationBuckets,
	}
	for _, opt := range opts {
		opt(in)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !in.customProvider {
		in.meterProvider = otel.GetMeterProvider()
	}
	in.matcherAttr = MatcherKey.String(in.name)

	if err := in.initializeMetrics(); err != nil {
		return nil, err
	}

	return in, nil
}

// MustNew creates an Instrument and panics on error.
func MustNew(opts ...Option) *Instrument {
	in, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics: %v", err))
	}

	return in
}

func (in *Instrument) validate() error {
	if in.customProvider && in.meterProvider == nil {
		return ErrNilMeterProvider
	}
	if in.name == "" {
		return ErrEmptyMatcherName
	}
	if len(in.durationBuckets) == 0 {
		return ErrInvalidBuckets
	}
	for i := 1; i < len(in.durationBuckets); i++ {
		if in.durationBuckets[i] <= in.durationBuckets[i-1] {
			return fmt.Errorf("%w: %v", ErrInvalidBuckets, in.durationBuckets)
		}
	}

	return nil
}

func (in *Instrument) initializeMetrics() error {
	meter := in.meterProvider.Meter(scopeName)

	var err error
	in.lookups, err = meter.Int64Counter(
		LookupsMetric,
		metric.WithDescription("Number of route lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s counter: %w", LookupsMetric, err)
	}

	in.duration, err = meter.Float64Histogram(
		DurationMetric,
		metric.WithDescription("Route lookup latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(in.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s histogram: %w", DurationMetric, err)
	}

	in.routes, err = meter.Int64Gauge(
		RoutesMetric,
		metric.WithDescription("Number of registered routes"),
		metric.WithUnit("{route}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s gauge: %w", RoutesMetric, err)
	}

	return nil
}

// Name returns the matcher name.
func (in *Instrument) Name() string {
	return in.name
}

// RecordRoutes records the number of registered routes.
func (in *Instrument) RecordRoutes(n int) {
	in.routes.Record(bgCtx, int64(n), metric.WithAttributes(in.matcherAttr))
}

func (in *Instrument) record(mode Mode, method string, hit bool, start time.Time) {
	elapsed := time.Since(start).Seconds()

	result := resultMiss
	if hit {
		result = resultHit
	}
	kvs := [4]attribute.KeyValue{
		in.matcherAttr,
		ModeKey.String(string(mode)),
		MethodKey.String(trie.NormalizeMethod(method)),
		ResultKey.String(result),
	}

	in.lookups.Add(bgCtx, 1, metric.WithAttributes(kvs[:]...))
	in.duration.Record(bgCtx, elapsed, metric.WithAttributes(kvs[:3]...))
}

// Wrap returns a matcher that calls fn and records the lookup.
//
// Example:
//
//	fn, err := compiler.Compile(tree)
//	...
//	fn = metrics.Wrap(in, metrics.ModeCompiled, fn)
func Wrap[T any](in *Instrument, mode Mode, fn compiler.Func[T]) compiler.Func[T] {
	return func(method, path string) (trie.Match[T], bool) {
		start := time.Now()
		m, ok := fn(method, path)
		in.record(mode, method, ok, start)

		return m, ok
	}
}

// WrapAll returns a match-all matcher that calls fn and records the lookup.
// A lookup with at least one match counts as a hit.
func WrapAll[T any](in *Instrument, mode Mode, fn compiler.AllFunc[T]) compiler.AllFunc[T] {
	return func(method, path string) []trie.Match[T] {
		start := time.Now()
		ms := fn(method, path)
		in.record(mode, method, len(ms) > 0, start)

		return ms
	}
}

// WrapTree returns an instrumented interpreted matcher for t and records
// its current route count.
func WrapTree[T any](in *Instrument, t *trie.Tree[T]) compiler.Func[T] {
	in.RecordRoutes(t.Len())

	return Wrap(in, ModeInterpreted, t.Lookup)
}
