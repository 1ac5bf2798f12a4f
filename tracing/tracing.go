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
	"errors"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "rivaas.dev/pathtrie"

// Tracer starts spans for matchers and build steps.
//
// Thread-safety: a Tracer is safe for concurrent use.
type Tracer struct {
	tracer         trace.Tracer
	provider       trace.TracerProvider
	sdkProvider    *sdktrace.TracerProvider
	customProvider bool

	serviceName    string
	serviceVersion string
	output         io.Writer
	processors     []sdktrace.SpanProcessor

	validationErrors []error

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a Tracer.
//
// With [WithStdout] or [WithSpanProcessor] it builds an SDK tracer provider
// it owns; release it with [Tracer.Shutdown].
func New(opts ...Option) (*Tracer, error) {
	t := &Tracer{
		serviceName:    DefaultServiceName,
		serviceVersion: DefaultServiceVersion,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid tracing configuration: %w", err)
	}
	if err := t.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	t.tracer = t.provider.Tracer(scopeName)

	return t, nil
}

// MustNew creates a Tracer and panics on error.
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("tracing: %v", err))
	}

	return t
}

func (t *Tracer) validate() error {
	errs := t.validationErrors
	if t.customProvider && (t.output != nil || len(t.processors) > 0) {
		errs = append(errs, ErrConflictingProviders)
	}

	return errors.Join(errs...)
}

// initializeProvider picks the custom provider, builds an SDK provider, or
// falls back to the global provider.
func (t *Tracer) initializeProvider() error {
	if t.customProvider {
		return nil
	}
	if t.output == nil && len(t.processors) == 0 {
		t.provider = otel.GetTracerProvider()
		return nil
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", t.serviceName),
		attribute.String("service.version", t.serviceVersion),
	)
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}
	if t.output != nil {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(t.output))
		if err != nil {
			return fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithSyncer(exporter))
	}
	for _, sp := range t.processors {
		opts = append(opts, sdktrace.WithSpanProcessor(sp))
	}

	t.sdkProvider = sdktrace.NewTracerProvider(opts...)
	t.provider = t.sdkProvider

	return nil
}

// Start starts a span named name with attrs. End it with [Tracer.Finish].
//
// Example:
//
//	ctx, span := tr.Start(ctx, "manifest.load", attribute.String("path", path))
//	m, err := manifest.LoadFile(path)
//	tr.Finish(span, err)
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Finish sets the span status from err and ends the span.
// A nil span is ignored.
func (t *Tracer) Finish(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Shutdown flushes and stops the SDK provider built by [New]. A provider
// passed with [WithTracerProvider] is left running. Shutdown runs once;
// later calls return the first result.
func (t *Tracer) Shutdown(ctx context.Context) error {
	t.shutdownOnce.Do(func() {
		if t.sdkProvider == nil {
			return
		}
		if err := t.sdkProvider.Shutdown(ctx); err != nil {
			t.shutdownErr = fmt.Errorf("tracer provider shutdown: %w", err)
		}
	})

	return t.shutdownErr
}
