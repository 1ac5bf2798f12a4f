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

import "errors"

var (
	// ErrNilTracerProvider indicates a nil tracer provider was provided.
	ErrNilTracerProvider = errors.New("tracer provider is nil")

	// ErrNilOutput indicates a nil writer was given to the stdout exporter.
	ErrNilOutput = errors.New("trace output cannot be nil")

	// ErrNilSpanProcessor indicates a nil span processor was provided.
	ErrNilSpanProcessor = errors.New("span processor is nil")

	// ErrConflictingProviders indicates a custom tracer provider combined with
	// options that build an SDK provider.
	ErrConflictingProviders = errors.New("custom tracer provider cannot be combined with an exporter or span processor")
)
