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


package tracing

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// NewTestTracer creates a Tracer whose spans are kept in the returned
// recorder. The tracer is shut down when the test ends.
//
// Example:
//
//	tr, rec := tracing.NewTestTracer(t)
//	...
//	spans := rec.Ended()
func NewTestTracer(t testing.TB, opts ...Option) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()

	rec := tracetest.NewSpanRecorder()
	tr, err := New(append([]Option{WithSpanProcessor(rec)}, opts...)...)
	if err != nil {
		t.Fatalf("NewTestTracer: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tr.Shutdown(ctx); err != nil {
			t.Logf("NewTestTracer: shutdown: %v", err)
		}
	})

	return tr, rec
}
