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
	"io"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultServiceName is the service.name resource attribute of SDK providers.
	DefaultServiceName = "pathtrie"

	// DefaultServiceVersion is the service.version resource attribute of SDK providers.
	DefaultServiceVersion = "dev"
)

// Option configures a [Tracer].
type Option func(*Tracer)

// WithTracerProvider sets the tracer provider spans are created from.
// The caller owns the provider: [Tracer.Shutdown] leaves it running.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *Tracer) {
		if tp == nil {
			t.validationErrors = append(t.validationErrors, ErrNilTracerProvider)
			return
		}
		t.provider = tp
		t.customProvider = true
	}
}

// WithStdout exports finished spans as JSON lines to w.
// Spans are written synchronously when they end.
//
// Example:
//
//	tr, err := tracing.New(tracing.WithStdout(os.Stderr))
func WithStdout(w io.Writer) Option {
	return func(t *Tracer) {
		if w == nil {
			t.validationErrors = append(t.validationErrors, ErrNilOutput)
			return
		}
		t.output = w
	}
}

// WithSpanProcessor adds a span processor to the SDK provider the Tracer
// builds. Tests use it with a tracetest.SpanRecorder.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(t *Tracer) {
		if sp == nil {
			t.validationErrors = append(t.validationErrors, ErrNilSpanProcessor)
			return
		}
		t.processors = append(t.processors, sp)
	}
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(t *Tracer) {
		t.serviceName = name
	}
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(t *Tracer) {
		t.serviceVersion = version
	}
}
