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

	"go.opentelemetry.io/otel/attribute"

	"rivaas.dev/pathtrie/compiler"
	"rivaas.dev/pathtrie/trie"
)

// LookupSpan is the name of the span recorded for each lookup.
const LookupSpan = "pathtrie.lookup"

// Attribute keys of lookup spans.
const (
	MethodKey  = attribute.Key("http.request.method")
	PathKey    = attribute.Key("url.path")
	MatchedKey = attribute.Key("pathtrie.matched")
	ParamsKey  = attribute.Key("pathtrie.params")
	MatchesKey = attribute.Key("pathtrie.matches")
)

// Func is a matcher that takes the context carrying the parent span.
type Func[T any] func(ctx context.Context, method, path string) (trie.Match[T], bool)

// AllFunc is a match-all matcher that takes the context carrying the parent span.
type AllFunc[T any] func(ctx context.Context, method, path string) []trie.Match[T]

// Wrap returns a matcher that calls fn inside a [LookupSpan] span.
func Wrap[T any](t *Tracer, fn compiler.Func[T]) Func[T] {
	return func(ctx context.Context, method, path string) (trie.Match[T], bool) {
		_, span := t.tracer.Start(ctx, LookupSpan)
		m, ok := fn(method, path)
		if span.IsRecording() {
			span.SetAttributes(
				MethodKey.String(trie.NormalizeMethod(method)),
				PathKey.String(path),
				MatchedKey.Bool(ok),
				ParamsKey.Int(len(m.Params)),
			)
		}
		span.End()

		return m, ok
	}
}

// WrapAll returns a match-all matcher that calls fn inside a [LookupSpan] span.
func WrapAll[T any](t *Tracer, fn compiler.AllFunc[T]) AllFunc[T] {
	return func(ctx context.Context, method, path string) []trie.Match[T] {
		_, span := t.tracer.Start(ctx, LookupSpan)
		ms := fn(method, path)
		if span.IsRecording() {
			span.SetAttributes(
				MethodKey.String(trie.NormalizeMethod(method)),
				PathKey.String(path),
				MatchedKey.Bool(len(ms) > 0),
				MatchesKey.Int(len(ms)),
			)
		}
		span.End()

		return ms
	}
}
