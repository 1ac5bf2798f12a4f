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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"rivaas.dev/pathtrie/compiler"
	"rivaas.dev/pathtrie/trie"
)

func newTestInstrument(t *testing.T, opts ...Option) (*Instrument, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})

	in, err := New(append([]Option{WithMeterProvider(mp)}, opts...)...)
	require.NoError(t, err)

	return in, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	require.Failf(t, "metric not found", "%s", name)

	return metricdata.Metrics{}
}

func attr(set attribute.Set, key attribute.Key) string {
	v, _ := set.Value(key)
	return v.AsString()
}

// lookupCounts returns the lookup counter values keyed by "mode/result".
func lookupCounts(t *testing.T, rm metricdata.ResourceMetrics) map[string]int64 {
	t.Helper()

	sum, ok := findMetric(t, rm, LookupsMetric).Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.True(t, sum.IsMonotonic)

	counts := make(map[string]int64)
	for _, dp := range sum.DataPoints {
		counts[attr(dp.Attributes, ModeKey)+"/"+attr(dp.Attributes, ResultKey)] += dp.Value
	}

	return counts
}

func testTree() *trie.Tree[string] {
	tree := trie.New[string]()
	tree.Insert("GET", "/users/:id", "user")
	tree.Insert("GET", "/health", "health")

	return tree
}

func TestWrapTree(t *testing.T) {
	t.Parallel()

	in, reader := newTestInstrument(t, WithMatcherName("api"))
	lookup := WrapTree(in, testTree())

	m, ok := lookup("GET", "/users/1")
	require.True(t, ok)
	assert.Equal(t, "user", m.Data)
	assert.Equal(t, map[string]string{"id": "1"}, m.Params)

	_, ok = lookup("get", "/health")
	require.True(t, ok)
	_, ok = lookup("GET", "/nope")
	require.False(t, ok)

	rm := collect(t, reader)
	assert.Equal(t, map[string]int64{
		"interpreted/hit":  2,
		"interpreted/miss": 1,
	}, lookupCounts(t, rm))

	hist, ok := findMetric(t, rm, DurationMetric).Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	dp := hist.DataPoints[0]
	assert.Equal(t, uint64(3), dp.Count)
	assert.Equal(t, "api", attr(dp.Attributes, MatcherKey))
	assert.Equal(t, "GET", attr(dp.Attributes, MethodKey))
	assert.Equal(t, defaultDurationBuckets, dp.Bounds)

	gauge, ok := findMetric(t, rm, RoutesMetric).Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(2), gauge.DataPoints[0].Value)
	assert.Equal(t, "api", attr(gauge.DataPoints[0].Attributes, MatcherKey))
}

func TestWrapCompiled(t *testing.T) {
	t.Parallel()

	tree := testTree()
	in, reader := newTestInstrument(t)

	fn, err := compiler.Compile(tree)
	require.NoError(t, err)
	lookup := Wrap(in, ModeCompiled, fn)

	_, ok := lookup("GET", "/health")
	require.True(t, ok)
	_, ok = lookup("POST", "/health")
	require.False(t, ok)

	all, err := compiler.CompileAll(tree)
	require.NoError(t, err)
	lookupAll := WrapAll(in, ModeCompiled, all)

	assert.Len(t, lookupAll("GET", "/users/7"), 1)
	assert.Empty(t, lookupAll("GET", "/users"))

	rm := collect(t, reader)
	assert.Equal(t, map[string]int64{
		"compiled/hit":  2,
		"compiled/miss": 2,
	}, lookupCounts(t, rm))

	sum := findMetric(t, rm, LookupsMetric).Data.(metricdata.Sum[int64])
	for _, dp := range sum.DataPoints {
		assert.Equal(t, DefaultMatcherName, attr(dp.Attributes, MatcherKey))
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "nil provider", opts: []Option{WithMeterProvider(nil)}, wantErr: ErrNilMeterProvider},
		{name: "empty name", opts: []Option{WithMatcherName("")}, wantErr: ErrEmptyMatcherName},
		{name: "no buckets", opts: []Option{WithDurationBuckets()}, wantErr: ErrInvalidBuckets},
		{name: "unsorted buckets", opts: []Option{WithDurationBuckets(0.1, 0.01)}, wantErr: ErrInvalidBuckets},
		{name: "repeated bucket", opts: []Option{WithDurationBuckets(0.1, 0.1)}, wantErr: ErrInvalidBuckets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, err := New(tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, in)
		})
	}

	assert.Panics(t, func() {
		MustNew(WithMatcherName(""))
	})
}

func TestNewGlobalProvider(t *testing.T) {
	t.Parallel()

	in, err := New(WithDurationBuckets(0.001, 0.01))
	require.NoError(t, err)
	assert.Equal(t, DefaultMatcherName, in.Name())

	// The global no-op provider accepts recordings.
	lookup := WrapTree(in, testTree())
	_, ok := lookup("GET", "/health")
	assert.True(t, ok)
}
