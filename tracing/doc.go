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


// Package tracing records OpenTelemetry spans for route matchers and for the
// steps that build them.
//
// Like the metrics package, tracing is opt-in. The trie and compiler
// packages never start spans; wrap a matcher where spans are wanted:
//
//	tr := tracing.MustNew(tracing.WithStdout(os.Stderr))
//	defer tr.Shutdown(context.Background())
//
//	lookup := tracing.Wrap(tr, compiler.Func[string](tree.Lookup))
//	m, ok := lookup(ctx, "GET", "/users/42")
//
// Longer operations such as loading a manifest or compiling a tree are
// traced with [Tracer.Start] and [Tracer.Finish].
//
// # Global State
//
// Without [WithTracerProvider], [WithStdout] or [WithSpanProcessor] the
// global OpenTelemetry tracer provider is used. This package never sets the
// global provider.
package tracing
